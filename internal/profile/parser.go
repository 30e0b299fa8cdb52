package profile

import (
	"context"
	"fmt"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/ZebulonRouseFrantzich/craftboot/internal/platform"
)

// Parser parses Lua profiles with platform detection.
type Parser struct {
	detector platform.Detector
}

// NewParser creates a profile parser with the given platform detector.
func NewParser(detector platform.Detector) *Parser {
	return &Parser{detector: detector}
}

// ParseError is a profile parsing error with a friendly message.
type ParseError struct {
	Message string // user-friendly message
	Detail  string // technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// FormatError formats a ParseError for user display. In verbose mode
// the raw Lua error is shown; otherwise the traceback is trimmed off.
func FormatError(err error, verbose bool) string {
	if parseErr, ok := err.(*ParseError); ok {
		if verbose {
			return fmt.Sprintf("%s\n\nDetails:\n%s", parseErr.Message, parseErr.Detail)
		}
		detail := parseErr.Detail
		if idx := strings.Index(detail, "stack traceback"); idx > 0 {
			detail = strings.TrimSpace(detail[:idx])
		}
		return fmt.Sprintf("%s: %s", parseErr.Message, detail)
	}
	return err.Error()
}

// ParseFile parses a Lua profile from a file.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return p.ParseString(ctx, string(data))
}

// ParseString parses a Lua profile from a string.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Profile, error) {
	L := newSandboxedVM()
	defer L.Close()

	if p.detector != nil {
		info, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		if err := platform.InjectPlatformTable(L, info); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		return nil, &ParseError{
			Message: "Lua syntax error",
			Detail:  err.Error(),
		}
	}

	return extractProfile(L)
}

// extractProfile pulls the profile out of the Lua state. It expects a
// global "craftboot" table.
func extractProfile(L *lua.LState) (*Profile, error) {
	root := L.GetGlobal("craftboot")
	if root.Type() != lua.LTTable {
		return nil, &ParseError{
			Message: "missing or invalid 'craftboot' table",
			Detail:  fmt.Sprintf("expected table, got %s", root.Type()),
		}
	}

	prof := Default()
	table := root.(*lua.LTable)

	setString(table, "game_dir", &prof.GameDir)
	setString(table, "version", &prof.Version)
	setString(table, "username", &prof.Username)
	setString(table, "java", &prof.Java)
	setString(table, "manifest_url", &prof.ManifestURL)
	setString(table, "asset_base_url", &prof.AssetBaseURL)

	if dlVal := table.RawGetString("downloads"); dlVal.Type() == lua.LTTable {
		dl := dlVal.(*lua.LTable)
		setInt(dl, "max_attempts", &prof.Downloads.MaxAttempts)
		setInt(dl, "fetch_workers", &prof.Downloads.FetchWorkers)
		setInt(dl, "unpack_workers", &prof.Downloads.UnpackWorkers)
	}

	if sigVal := table.RawGetString("signature"); sigVal.Type() == lua.LTTable {
		sig := sigVal.(*lua.LTable)
		setString(sig, "url", &prof.Signature.URL)
		setString(sig, "keyring", &prof.Signature.Keyring)
	}

	prof.ExtraJVMArgs = stringList(table, "jvm_args")
	prof.ExtraGameArgs = stringList(table, "game_args")

	if err := prof.Validate(); err != nil {
		return nil, &ParseError{
			Message: "profile validation failed",
			Detail:  err.Error(),
		}
	}

	return prof, nil
}

func setString(table *lua.LTable, key string, dst *string) {
	if v := table.RawGetString(key); v.Type() == lua.LTString {
		*dst = v.String()
	}
}

func setInt(table *lua.LTable, key string, dst *int) {
	if v := table.RawGetString(key); v.Type() == lua.LTNumber {
		*dst = int(lua.LVAsNumber(v))
	}
}

// stringList reads an array of strings, skipping nil entries so
// platform conditionals like `platform.is_linux and "-Dx" or nil`
// just work.
func stringList(table *lua.LTable, key string) []string {
	v := table.RawGetString(key)
	if v.Type() != lua.LTTable {
		return nil
	}

	var out []string
	v.(*lua.LTable).ForEach(func(_, value lua.LValue) {
		if value.Type() != lua.LTString {
			return
		}
		out = append(out, value.String())
	})
	return out
}
