package suites

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

const (
	testOmegaHex  = "95166525526a65439feec240d80689fd697168a3a6000fe4541b8ff2ee0434e"
	testOmega4Hex = "6d031f1b5c49c83409f1ca610a08f16655ea6811be9c622d4a838b5d59cd79e5"
)

// writeTestSRS produces a minimal well-formed SRS file: a handful of G1
// points and the two G2 points, all uncompressed.
func writeTestSRS(t *testing.T, path string) {
	t.Helper()
	_, _, g1Gen, g2Gen := bls12381.Generators()

	var buf []byte
	count := make([]byte, 8)
	binary.LittleEndian.PutUint64(count, 3)
	buf = append(buf, count...)
	for i := 0; i < 3; i++ {
		raw := g1Gen.RawBytes()
		buf = append(buf, raw[:]...)
	}
	binary.LittleEndian.PutUint64(count, 2)
	buf = append(buf, count...)
	for i := 0; i < 2; i++ {
		raw := g2Gen.RawBytes()
		buf = append(buf, raw[:]...)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("writing test SRS: %v", err)
	}
}

func writeProfile(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "ring.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing profile: %v", err)
	}
	return path
}

func TestLoadRingProfileBuildsDomainAndSRS(t *testing.T) {
	dir := t.TempDir()
	srsPath := filepath.Join(dir, "srs.bin")
	writeTestSRS(t, srsPath)

	path := writeProfile(t, dir, `
domain_size: 512
max_ring: 255
omega: "`+testOmegaHex+`"
omega4: "`+testOmega4Hex+`"
srs_path: "`+srsPath+`"
`)

	p, err := LoadRingProfile(path)
	if err != nil {
		t.Fatalf("LoadRingProfile: %v", err)
	}

	d, err := p.Domain()
	if err != nil {
		t.Fatalf("Domain: %v", err)
	}
	if d.N != 512 {
		t.Fatalf("domain size: got %d, want 512", d.N)
	}
	// Omega4^4 must equal Omega for the radix-4 refinement to be
	// consistent with the core domain.
	om4sq := d.Omega4
	om4sq.Square(&om4sq)
	om4sq.Square(&om4sq)
	if !om4sq.Equal(&d.Omega) {
		t.Fatal("omega4^4 != omega")
	}

	srs, err := p.LoadSRS()
	if err != nil {
		t.Fatalf("LoadSRS: %v", err)
	}
	if srs.Degree() != 2 {
		t.Fatalf("SRS degree: got %d, want 2", srs.Degree())
	}
}

func TestLoadRingProfileRejectsBadConfigs(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		body string
	}{
		{"non power of two domain", `
domain_size: 500
max_ring: 100
omega: "1"
omega4: "1"
srs_path: "srs.bin"
`},
		{"max ring leaves no bit rows", `
domain_size: 512
max_ring: 256
omega: "1"
omega4: "1"
srs_path: "srs.bin"
`},
		{"missing srs path", `
domain_size: 512
max_ring: 255
omega: "1"
omega4: "1"
`},
	}
	for _, c := range cases {
		path := writeProfile(t, dir, c.body)
		if _, err := LoadRingProfile(path); err == nil {
			t.Fatalf("%s: expected validation error", c.name)
		}
	}
}
