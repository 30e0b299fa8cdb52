package launch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ZebulonRouseFrantzich/craftboot/internal/logging"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/manifest"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/platform"
	"github.com/ZebulonRouseFrantzich/craftboot/internal/rules"
)

const (
	launcherName    = "craftboot"
	launcherVersion = "1.0"
)

// legacyJVMArgs is the JVM argument list used for version documents
// that predate the split argument format.
var legacyJVMArgs = []string{
	"-Djava.library.path=${natives_directory}",
	"-cp",
	"${classpath}",
}

var placeholderRe = regexp.MustCompile(`\$\{[^}]+\}`)

// Command is a fully composed client invocation.
type Command struct {
	Java string
	Args []string
	Dir  string
}

// Inputs collects everything argument composition needs.
type Inputs struct {
	Version *manifest.Version
	Session Session

	Java         string
	GameDir      string
	AssetsDir    string
	NativesDir   string
	LibrariesDir string
	// ClassPaths holds the library jars plus the client jar, already
	// in their final order.
	ClassPaths []string

	ExtraJVMArgs  []string
	ExtraGameArgs []string
}

// Composer builds client commands for one platform.
type Composer struct {
	info *platform.Info
	log  logging.Logger
}

// NewComposer creates a composer. A nil logger falls back to a no-op.
func NewComposer(info *platform.Info, log logging.Logger) *Composer {
	if log == nil {
		log = logging.Nop()
	}
	return &Composer{info: info, log: log}
}

// Compose assembles the full command line for a version document:
// JVM arguments, main class, then game arguments, with every ${...}
// placeholder substituted. Demo-mode flags are stripped, and legacy
// documents that omit authentication arguments get them backfilled.
func (c *Composer) Compose(in Inputs) (*Command, error) {
	v := in.Version
	if v == nil {
		return nil, fmt.Errorf("no version document")
	}
	if v.MainClass == "" {
		return nil, fmt.Errorf("version %s: no main class", v.ID)
	}

	sep := ":"
	if c.info.IsWindows() {
		sep = ";"
	}

	values := map[string]string{
		"auth_player_name":    in.Session.Username,
		"auth_uuid":           in.Session.UUID,
		"auth_access_token":   in.Session.AccessToken,
		"auth_session":        in.Session.AccessToken,
		"user_type":           in.Session.UserType,
		"user_properties":     "{}",
		"version_name":        v.ID,
		"version_type":        v.Type,
		"game_directory":      in.GameDir,
		"assets_root":         in.AssetsDir,
		"game_assets":         in.AssetsDir,
		"assets_index_name":   v.Assets,
		"natives_directory":   in.NativesDir,
		"library_directory":   in.LibrariesDir,
		"classpath":           strings.Join(in.ClassPaths, sep),
		"classpath_separator": sep,
		"launcher_name":       launcherName,
		"launcher_version":    launcherVersion,
	}

	var args []string
	args = append(args, c.jvmArgs(v)...)
	args = append(args, in.ExtraJVMArgs...)
	args = append(args, v.MainClass)
	args = append(args, c.gameArgs(v)...)
	args = append(args, in.ExtraGameArgs...)

	args = stripDemo(args)
	args = c.backfillAuth(v, args)

	expanded := make([]string, len(args))
	for i, arg := range args {
		expanded[i] = expand(arg, values)
	}

	c.log.Debug("composed client command",
		"version", v.ID, "main_class", v.MainClass, "args", len(expanded))

	return &Command{Java: in.Java, Args: expanded, Dir: in.GameDir}, nil
}

// jvmArgs returns the rule-filtered JVM arguments, or the legacy
// defaults for documents without the split format.
func (c *Composer) jvmArgs(v *manifest.Version) []string {
	if v.Arguments == nil || len(v.Arguments.JVM) == 0 {
		return legacyJVMArgs
	}
	return c.filterArgs(v.Arguments.JVM)
}

// gameArgs returns the rule-filtered game arguments, falling back to
// the legacy space-separated string.
func (c *Composer) gameArgs(v *manifest.Version) []string {
	if v.Arguments != nil && len(v.Arguments.Game) > 0 {
		return c.filterArgs(v.Arguments.Game)
	}
	return strings.Fields(v.MinecraftArguments)
}

// filterArgs flattens argument entries whose rules allow this platform.
func (c *Composer) filterArgs(entries []manifest.Argument) []string {
	var out []string
	for _, e := range entries {
		if !rules.Eval(e.Rules, c.info) {
			continue
		}
		out = append(out, e.Values...)
	}
	return out
}

// backfillAuth appends authentication arguments that old documents
// omit from their argument strings. The client refuses to start
// without them.
func (c *Composer) backfillAuth(v *manifest.Version, args []string) []string {
	if v.MinecraftArguments == "" {
		return args
	}

	present := make(map[string]bool, len(args))
	for _, a := range args {
		present[a] = true
	}

	backfill := [][2]string{
		{"--username", "${auth_player_name}"},
		{"--uuid", "${auth_uuid}"},
		{"--accessToken", "${auth_access_token}"},
	}
	for _, pair := range backfill {
		if !present[pair[0]] {
			args = append(args, pair[0], pair[1])
		}
	}
	return args
}

// stripDemo removes demo-mode flags so an offline identity never
// starts a crippled client.
func stripDemo(args []string) []string {
	out := args[:0]
	for _, a := range args {
		if a == "--demo" {
			continue
		}
		out = append(out, a)
	}
	return out
}

// expand substitutes every known ${...} placeholder. Unknown
// placeholders collapse to the empty string instead of leaking the
// raw token into the client.
func expand(arg string, values map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(arg, func(tok string) string {
		return values[tok[2:len(tok)-1]]
	})
}
