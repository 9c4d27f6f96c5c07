package sqlite

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/CanonBridge/core/errors"
)

// FileDigest returns the hex BLAKE3-256 digest of the file at path.
func FileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.NewIO("open", path, err)
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.NewIO("read", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyDigest compares the file's BLAKE3 digest against expected. An empty
// expected digest disables the check. A mismatch is an integrity fault: the
// corpus file is not the one the deployment was pinned to.
func VerifyDigest(path, expected string) error {
	expected = strings.ToLower(strings.TrimSpace(expected))
	if expected == "" {
		return nil
	}

	got, err := FileDigest(path)
	if err != nil {
		return err
	}
	if got != expected {
		return errors.NewIntegrity("database", path,
			fmt.Sprintf("blake3 digest %s does not match pinned %s", got, expected))
	}
	return nil
}
