// Package natives unpacks the platform-native-library members of
// archive artifacts into the run's natives directory. Archives are
// validated before extraction so a corrupt file fails fast instead of
// leaving a half-extracted directory.
package natives

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/ZebulonRouseFrantzich/craftboot/internal/logging"
)

// metadataPrefix is the reserved archive prefix that is never extracted.
const metadataPrefix = "META-INF/"

// CorruptArchiveError reports an archive that failed validation.
// Unlike transport or integrity errors it is not retryable here: the
// archive must be refetched before extraction can be retried.
type CorruptArchiveError struct {
	Path string
	Err  error
}

func (e *CorruptArchiveError) Error() string {
	return fmt.Sprintf("corrupt archive %s: %v", e.Path, e.Err)
}

func (e *CorruptArchiveError) Unwrap() error { return e.Err }

// Unpacker extracts native archives.
type Unpacker struct {
	log logging.Logger
}

// New creates an unpacker. A nil logger falls back to a no-op.
func New(log logging.Logger) *Unpacker {
	if log == nil {
		log = logging.Nop()
	}
	return &Unpacker{log: log}
}

// Unpack extracts every member of the archive except those under the
// metadata prefix into outputDir, creating it if absent. Directory
// creation is idempotent and member writes target independent files,
// so concurrent invocations with disjoint archives into the same
// outputDir do not interfere.
func (u *Unpacker) Unpack(archivePath, outputDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("open archive: %w", err)
		}
		return &CorruptArchiveError{Path: archivePath, Err: err}
	}
	defer r.Close()

	// Validate member payloads before touching the output directory;
	// the zip reader checks CRCs as members are read to EOF.
	if err := validate(&r.Reader); err != nil {
		return &CorruptArchiveError{Path: archivePath, Err: err}
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	cleanRoot := filepath.Clean(outputDir)
	for _, member := range r.File {
		if strings.HasPrefix(member.Name, metadataPrefix) {
			continue
		}

		target := filepath.Join(outputDir, filepath.FromSlash(member.Name))
		if !strings.HasPrefix(target, cleanRoot+string(os.PathSeparator)) {
			return fmt.Errorf("illegal member path: %s", member.Name)
		}

		if member.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
			continue
		}

		if err := extractMember(member, target); err != nil {
			return err
		}
	}

	return nil
}

// validate reads every member to EOF so CRC mismatches and truncated
// payloads surface before any file is written.
func validate(r *zip.Reader) error {
	for _, member := range r.File {
		if member.FileInfo().IsDir() {
			continue
		}
		rc, err := member.Open()
		if err != nil {
			return fmt.Errorf("member %s: %w", member.Name, err)
		}
		_, err = io.Copy(io.Discard, rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("member %s: %w", member.Name, err)
		}
	}
	return nil
}

// extractMember writes one archive member to its target path.
func extractMember(member *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", target, err)
	}

	mode := member.Mode().Perm()
	if mode == 0 {
		mode = 0o755
	}

	rc, err := member.Open()
	if err != nil {
		return fmt.Errorf("open member %s: %w", member.Name, err)
	}
	defer rc.Close()

	outFile, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create file %s: %w", target, err)
	}

	if _, err := io.Copy(outFile, rc); err != nil {
		outFile.Close()
		return fmt.Errorf("write file %s: %w", target, err)
	}

	return outFile.Close()
}
