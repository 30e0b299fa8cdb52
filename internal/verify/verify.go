// Package verify checks detached GPG signatures over acquired
// artifacts against a locally trusted keyring. Content integrity is
// covered by digests during acquisition; this layer adds authenticity
// for installs that publish signatures.
package verify

import (
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp" //nolint:staticcheck // Using ProtonMail's maintained fork
)

// Verifier checks detached signatures against one keyring file.
type Verifier struct {
	keyringPath string
}

// NewVerifier creates a verifier backed by the keyring at path.
func NewVerifier(keyringPath string) *Verifier {
	return &Verifier{keyringPath: keyringPath}
}

// VerifyDetached checks the detached signature at sigPath over the file
// at targetPath. Armored signatures are tried first, binary second.
func (v *Verifier) VerifyDetached(targetPath, sigPath string) error {
	keyring, err := v.loadKeyring()
	if err != nil {
		return err
	}

	target, err := os.Open(targetPath)
	if err != nil {
		return fmt.Errorf("open target: %w", err)
	}
	defer target.Close()

	sig, err := os.Open(sigPath)
	if err != nil {
		return fmt.Errorf("open signature: %w", err)
	}
	defer sig.Close()

	_, err = openpgp.CheckArmoredDetachedSignature(keyring, target, sig, nil)
	if err != nil {
		target.Seek(0, io.SeekStart)
		sig.Seek(0, io.SeekStart)
		_, err = openpgp.CheckDetachedSignature(keyring, target, sig, nil)
	}
	if err != nil {
		return fmt.Errorf("verify signature for %s: %w", targetPath, err)
	}

	return nil
}

// loadKeyring reads the trusted keyring, armored or binary.
func (v *Verifier) loadKeyring() (openpgp.EntityList, error) {
	f, err := os.Open(v.keyringPath)
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	defer f.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		f.Seek(0, io.SeekStart)
		keyring, err = openpgp.ReadKeyRing(f)
		if err != nil {
			return nil, fmt.Errorf("read keyring: %w", err)
		}
	}

	if len(keyring) == 0 {
		return nil, fmt.Errorf("keyring %s is empty", v.keyringPath)
	}

	return keyring, nil
}
