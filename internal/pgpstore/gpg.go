package pgpstore

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"

	"dpgpid/internal/domain"
)

// GPG is a PGPStore that asks the local gpg binary to export keys. Pattern
// matching is left to gpg.
type GPG struct {
	binary  string
	homedir string
}

var _ domain.PGPStore = (*GPG)(nil)

// NewGPG returns a store running binary ("gpg" when empty). A non-empty
// homedir is passed as --homedir.
func NewGPG(binary, homedir string) *GPG {
	if binary == "" {
		binary = "gpg"
	}
	return &GPG{binary: binary, homedir: homedir}
}

// Find exports the secret keys matching pattern. gpg may prompt through its
// agent to authorize the export.
func (g *GPG) Find(ctx context.Context, pattern string) (openpgp.EntityList, error) {
	out, err := g.run(ctx, "--armor", "--export-secret-keys", pattern)
	if err != nil {
		return nil, err
	}
	return parseExport(out)
}

// List describes the public keys matching pattern and marks those gpg holds
// a secret for. It never exports secret material.
func (g *GPG) List(ctx context.Context, pattern string) ([]domain.PGPKeyInfo, error) {
	out, err := g.run(ctx, "--armor", "--export", pattern)
	if err != nil {
		return nil, err
	}
	entities, err := parseExport(out)
	if err != nil {
		return nil, err
	}
	colons, err := g.run(ctx, "--with-colons", "--list-secret-keys", pattern)
	if err != nil {
		log.Debugf("gpg secret listing failed: %v", err)
		colons = nil
	}
	secret := secretFingerprints(colons)

	infos := describeAll(entities)
	for i := range infos {
		infos[i].HasSecret = secret[string(infos[i].Fingerprint)]
	}
	return infos, nil
}

func (g *GPG) run(ctx context.Context, args ...string) ([]byte, error) {
	full := []string{"--batch", "--no-tty"}
	if g.homedir != "" {
		full = append(full, "--homedir", g.homedir)
	}
	for _, a := range args {
		if a != "" {
			full = append(full, a)
		}
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, g.binary, full...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	log.Debugf("running %s %s", g.binary, strings.Join(full, " "))
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("%s: %w", g.binary, err)
		}
		return nil, fmt.Errorf("%s: %w: %s", g.binary, err, msg)
	}
	return stdout.Bytes(), nil
}

// parseExport reads gpg's armored output; nothing exported means no match.
func parseExport(out []byte) (openpgp.EntityList, error) {
	if len(bytes.TrimSpace(out)) == 0 {
		return nil, nil
	}
	return ReadKeys(bytes.NewReader(out))
}

// secretFingerprints collects the primary fingerprints from gpg's colon
// listing. Only the first fpr record after each sec record is a primary.
func secretFingerprints(colons []byte) map[string]bool {
	out := map[string]bool{}
	sc := bufio.NewScanner(bytes.NewReader(colons))
	wantPrimary := false
	for sc.Scan() {
		fields := strings.Split(sc.Text(), ":")
		switch fields[0] {
		case "sec":
			wantPrimary = true
		case "fpr":
			if wantPrimary && len(fields) > 9 {
				out[strings.ToUpper(fields[9])] = true
			}
			wantPrimary = false
		}
	}
	return out
}
