// Command vrfgen outputs a fresh Bandersnatch VRF keypair: a random
// seed is drawn and run through the suite's deterministic secret
// derivation.
package main

import (
	"crypto/rand"
	"fmt"
	"log"

	"github.com/chainscore-labs/ringvrf/suites"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	fmt.Println()

	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		log.Fatal(err)
	}
	sk := suites.DeriveSecret(seed)
	pk := suites.PublicKey(sk)

	fmt.Printf("VRF Secret Key:\n%x\n\n", sk.Bytes())
	fmt.Printf("VRF Public Key:\n%x\n", pk.Bytes())
}
