package suites

import (
	"fmt"
	"math/big"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/chainscore-labs/ringvrf/field"
	"github.com/chainscore-labs/ringvrf/kzg"
	"github.com/chainscore-labs/ringvrf/ringerr"
	"github.com/chainscore-labs/ringvrf/vrf/ring"
)

// RingProfile configures a Ring VRF instance: the evaluation domain,
// the ring size bound, and the SRS location. Loading reads the file,
// unmarshals the YAML, then validates that required fields are present.
type RingProfile struct {
	// DomainSize is the core evaluation domain size n (a power of two).
	DomainSize int `yaml:"domain_size"`
	// MaxRing is the maximum number of ring members this profile supports.
	MaxRing int `yaml:"max_ring"`
	// OmegaHex is the hex-encoded primitive DomainSize-th root of unity.
	OmegaHex string `yaml:"omega"`
	// Omega4Hex is the hex-encoded primitive (4*DomainSize)-th root of
	// unity, used for the constraint-evaluation domain.
	Omega4Hex string `yaml:"omega4"`
	// SRSPath is the filesystem path to the opaque SRS file.
	SRSPath string `yaml:"srs_path"`
}

// LoadRingProfile reads and validates a RingProfile from a YAML file.
func LoadRingProfile(path string) (*RingProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ring profile %q: %w", path, err)
	}
	var p RingProfile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing ring profile %q: %w", path, ringerr.ErrInvalidEncoding)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *RingProfile) validate() error {
	if p.DomainSize <= 0 || p.DomainSize&(p.DomainSize-1) != 0 {
		return fmt.Errorf("domain_size must be a positive power of two, got %d: %w", p.DomainSize, ringerr.ErrInvalidEncoding)
	}
	bitRows := field.FrModulus.BitLen()
	if p.MaxRing <= 0 || p.MaxRing > p.DomainSize-ring.PaddingRows-bitRows {
		return fmt.Errorf("max_ring %d leaves no room for %d blinding-bit rows in domain_size %d: %w", p.MaxRing, bitRows, p.DomainSize, ringerr.ErrInvalidEncoding)
	}
	if p.OmegaHex == "" || p.Omega4Hex == "" {
		return fmt.Errorf("omega and omega4 are required: %w", ringerr.ErrInvalidEncoding)
	}
	if p.SRSPath == "" {
		return fmt.Errorf("srs_path is required: %w", ringerr.ErrInvalidEncoding)
	}
	return nil
}

// Omega parses the configured primitive DomainSize-th root of unity.
func (p *RingProfile) Omega() (field.Fp, error) {
	return parseFpHex(p.OmegaHex)
}

// Omega4 parses the configured primitive (4*DomainSize)-th root of unity.
func (p *RingProfile) Omega4() (field.Fp, error) {
	return parseFpHex(p.Omega4Hex)
}

// Domain builds the evaluation domain this profile configures, ready to
// hand to the ring prover and verifier.
func (p *RingProfile) Domain() (ring.Domain, error) {
	omega, err := p.Omega()
	if err != nil {
		return ring.Domain{}, err
	}
	omega4, err := p.Omega4()
	if err != nil {
		return ring.Domain{}, err
	}
	return ring.Domain{N: p.DomainSize, Omega: omega, Omega4: omega4}, nil
}

// LoadSRS reads and parses the SRS file the profile points at.
func (p *RingProfile) LoadSRS() (*kzg.SRS, error) {
	data, err := os.ReadFile(p.SRSPath)
	if err != nil {
		return nil, fmt.Errorf("reading SRS %q: %w", p.SRSPath, err)
	}
	return kzg.LoadSRS(data)
}

func parseFpHex(s string) (field.Fp, error) {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return field.Fp{}, fmt.Errorf("invalid hex field element %q: %w", s, ringerr.ErrInvalidEncoding)
	}
	return field.FpFromBigInt(v), nil
}
