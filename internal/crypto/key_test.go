package crypto_test

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"testing"

	"dpgpid/internal/crypto"
	"dpgpid/internal/util/memzero"
)

func seedOf(b byte) []byte { return bytes.Repeat([]byte{b}, crypto.SeedSize) }

func TestFromSeedDerivesPublic(t *testing.T) {
	k, err := crypto.FromSeed(seedOf(1))
	if err != nil {
		t.Fatalf("FromSeed: %v", err)
	}
	defer k.Zero()

	want := ed25519.NewKeyFromSeed(seedOf(1)).Public().(ed25519.PublicKey)
	if !bytes.Equal(k.Public(), want) {
		t.Fatalf("public mismatch: %x vs %x", k.Public(), want)
	}
	if !k.HasSecret() {
		t.Fatal("expected secret")
	}
}

func TestFromSeedCopiesInput(t *testing.T) {
	in := seedOf(7)
	k, err := crypto.FromSeed(in)
	if err != nil {
		t.Fatalf("FromSeed: %v", err)
	}
	defer k.Zero()
	memzero.Zero(in)

	seed, err := k.Seed()
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	defer memzero.Zero(seed)
	if !bytes.Equal(seed, seedOf(7)) {
		t.Fatal("key aliased caller buffer")
	}
}

func TestFromSeedRejectsBadLength(t *testing.T) {
	for _, n := range []int{0, 31, 33, 64} {
		if _, err := crypto.FromSeed(make([]byte, n)); !errors.Is(err, crypto.ErrKeySize) {
			t.Fatalf("len %d: want ErrKeySize, got %v", n, err)
		}
	}
}

func TestFromPrivateKeyChecksPublicHalf(t *testing.T) {
	priv := ed25519.NewKeyFromSeed(seedOf(2))
	k, err := crypto.FromPrivateKey(priv)
	if err != nil {
		t.Fatalf("FromPrivateKey: %v", err)
	}
	k.Zero()

	bad := append([]byte(nil), priv...)
	bad[63] ^= 0x01
	if _, err := crypto.FromPrivateKey(bad); !errors.Is(err, crypto.ErrKeyMismatch) {
		t.Fatalf("want ErrKeyMismatch, got %v", err)
	}
}

func TestZeroWipesSecret(t *testing.T) {
	k, err := crypto.FromSeed(seedOf(9))
	if err != nil {
		t.Fatalf("FromSeed: %v", err)
	}
	pub := k.Public()
	k.Zero()
	k.Zero()

	if k.HasSecret() {
		t.Fatal("secret still reported after Zero")
	}
	if _, err := k.Seed(); !errors.Is(err, crypto.ErrNoSecret) {
		t.Fatalf("want ErrNoSecret, got %v", err)
	}
	if !bytes.Equal(k.Public(), pub) {
		t.Fatal("Zero must not touch the public key")
	}
	var nilKey *crypto.KeyMaterial
	nilKey.Zero()
}

func TestEqualComparesPublicOnly(t *testing.T) {
	a, _ := crypto.FromSeed(seedOf(3))
	b, _ := crypto.FromSeed(seedOf(3))
	defer a.Zero()
	defer b.Zero()
	pubOnly := a.PublicOnly()

	if !a.Equal(b) || !a.Equal(pubOnly) {
		t.Fatal("keys with equal public halves must be equal")
	}
	c, _ := crypto.FromSeed(seedOf(4))
	defer c.Zero()
	if a.Equal(c) {
		t.Fatal("different keys compared equal")
	}
}

func TestSignVerify(t *testing.T) {
	k, _ := crypto.FromSeed(seedOf(5))
	defer k.Zero()
	sig, err := k.Sign([]byte("msg"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !ed25519.Verify(k.Public(), []byte("msg"), sig) {
		t.Fatal("signature did not verify")
	}
	if _, err := k.PublicOnly().Sign([]byte("msg")); !errors.Is(err, crypto.ErrNoSecret) {
		t.Fatalf("want ErrNoSecret, got %v", err)
	}
}

func TestGroupHex(t *testing.T) {
	if got := crypto.GroupHex([]byte{0xab, 0xcd, 0xef}); got != "ABCD EF" {
		t.Fatalf("got %q", got)
	}
}
