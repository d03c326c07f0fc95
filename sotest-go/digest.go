package sotest_go

import (
	"encoding/hex"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// LibraryDigest returns the hex BLAKE3 hash of the file at path. Paths the
// loader resolves through its search list (a bare soname) have no file here
// and yield an error.
func LibraryDigest(path string) (string, error) {
	r, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer r.Close()
	hf := blake3.New()
	if _, err := io.Copy(hf, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(hf.Sum(nil)), nil
}
