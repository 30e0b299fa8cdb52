// Package rules evaluates the conditional platform rules that manifest
// entries (libraries, arguments) carry. Evaluation is a pure predicate
// over detected platform information.
package rules

import (
	"regexp"

	"github.com/ZebulonRouseFrantzich/craftboot/internal/platform"
)

// Action is a rule's verdict when it matches.
type Action string

const (
	ActionAllow    Action = "allow"
	ActionDisallow Action = "disallow"
)

// OS constrains a rule to an operating system. All set fields must
// match; Version is a regular expression tested against the detected
// OS version string.
type OS struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
	Arch    string `json:"arch,omitempty"`
}

// Rule is one conditional entry in a rule list.
type Rule struct {
	Action   Action          `json:"action"`
	OS       *OS             `json:"os,omitempty"`
	Features map[string]bool `json:"features,omitempty"`
}

// Eval reports whether an entry guarded by rules applies on the given
// platform. An empty rule list allows. Otherwise the default is
// disallow and the last matching rule's action wins.
func Eval(rs []Rule, info *platform.Info) bool {
	if len(rs) == 0 {
		return true
	}

	allow := false
	for _, r := range rs {
		if !r.matches(info) {
			continue
		}
		allow = r.Action == ActionAllow
	}
	return allow
}

// matches reports whether the rule's conditions hold on info. Rules
// that require launcher features never match: no features are
// supported here.
func (r Rule) matches(info *platform.Info) bool {
	if len(r.Features) > 0 {
		return false
	}
	if r.OS == nil {
		return true
	}
	if r.OS.Name != "" && r.OS.Name != info.OS {
		return false
	}
	if r.OS.Arch != "" && r.OS.Arch != info.Arch {
		return false
	}
	if r.OS.Version != "" {
		re, err := regexp.Compile(r.OS.Version)
		if err != nil || !re.MatchString(info.OSVersion) {
			return false
		}
	}
	return true
}
