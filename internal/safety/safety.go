// Package safety classifies a process invocation as safe or destructive
// using regex pattern matching over its command line.
package safety

import (
	"path"
	"regexp"
	"strings"
	"sync"
)

// Level represents the safety classification of an invocation.
type Level int

const (
	Safe Level = iota
	Destructive
)

// rule flags a command segment matching pattern. When allow is set, the
// rule fires only if some first submatch falls outside it.
type rule struct {
	pattern *regexp.Regexp
	allow   map[string]bool
}

func (r rule) matches(segment string) bool {
	if r.allow == nil {
		return r.pattern.MatchString(segment)
	}
	for _, m := range r.pattern.FindAllStringSubmatch(segment, -1) {
		if !r.allow[m[1]] {
			return true
		}
	}
	return false
}

var (
	rules     []rule
	rulesOnce sync.Once
)

type rawRule struct {
	pattern string
	allow   []string
}

// destructiveRules match against one lower-cased command segment whose
// first word is an executable base name without any .exe suffix.
var destructiveRules = []rawRule{
	{`^rm(\s|$)`, nil},
	{`^sudo\s`, nil},
	{`^doas\s`, nil},
	{`^dd\s.*\bif=`, nil},
	{`^mkfs`, nil},
	{`^fdisk\b`, nil},
	{`^diskpart\b`, nil},
	{`^format\s`, nil},
	{`^shutdown\b`, nil},
	{`^reboot\b`, nil},
	{`^kill\s+-(9|kill)\b`, nil},
	{`^killall\s`, nil},
	{`^taskkill\s`, nil},
	{`^shred\s`, nil},
	{`^truncate\s`, nil},
	{`^chmod\s+(-r\s+)?000\b`, nil},
	{`^chown\s+-r\b`, nil},
	{`^mv\s+/`, nil},
	{`^(del|erase)\s`, nil},
	{`^(rd|rmdir)\s+/s\b`, nil},
	{`^remove-item\b`, nil},
	{`^sc\s+(stop|delete|config)\b`, nil},
	{`^systemctl\s+(stop|disable|mask|poweroff|reboot|halt)\b`, nil},
	{`^find\s.*\s-(delete|exec(dir)?\s+(rm|shred))\b`, nil},
	{`^:\s*>\s*\S`, nil}, // truncate via : > file
	{`>+\s*/dev/([a-z0-9_]+)`, []string{"null", "stdout", "stderr", "tty"}},
}

func compileRules() {
	rulesOnce.Do(func() {
		rules = make([]rule, len(destructiveRules))
		for i, r := range destructiveRules {
			rules[i].pattern = regexp.MustCompile(r.pattern)
			if r.allow != nil {
				rules[i].allow = make(map[string]bool, len(r.allow))
				for _, a := range r.allow {
					rules[i].allow[a] = true
				}
			}
		}
	})
}

// wrapper describes a command that runs the command following its own
// options, so the wrapped command is classified in its place.
type wrapper struct {
	valueFlags  map[string]bool // options that consume the next word
	foldFlags   bool            // options are case-insensitive
	slashFlags  bool            // cmd.exe style /c options
	assignments bool            // NAME=value words precede the command
	positional  int             // operands before the command (timeout's duration)
}

func flagSet(flags ...string) map[string]bool {
	m := make(map[string]bool, len(flags))
	for _, f := range flags {
		m[f] = true
	}
	return m
}

var shellWrapper = wrapper{valueFlags: flagSet("-o", "+o")}

var wrappers = map[string]wrapper{
	"env":        {valueFlags: flagSet("-u", "--unset", "-C", "--chdir", "-S", "--split-string"), assignments: true},
	"xargs":      {valueFlags: flagSet("-n", "-L", "-P", "-I", "-d", "-s", "-a", "-E")},
	"nice":       {valueFlags: flagSet("-n", "--adjustment")},
	"ionice":     {valueFlags: flagSet("-c", "-n", "-p")},
	"timeout":    {valueFlags: flagSet("-s", "--signal", "-k", "--kill-after"), positional: 1},
	"stdbuf":     {valueFlags: flagSet("-i", "-o", "-e")},
	"nohup":      {},
	"command":    {},
	"builtin":    {},
	"exec":       {},
	"time":       {},
	"setsid":     {},
	"busybox":    {},
	"sh":         shellWrapper,
	"bash":       shellWrapper,
	"zsh":        shellWrapper,
	"dash":       shellWrapper,
	"ksh":        shellWrapper,
	"fish":       shellWrapper,
	"cmd":        {slashFlags: true},
	"powershell": {valueFlags: flagSet("-executionpolicy", "-windowstyle", "-file"), foldFlags: true},
	"pwsh":       {valueFlags: flagSet("-executionpolicy", "-windowstyle", "-file"), foldFlags: true},
}

var (
	separatorRe = regexp.MustCompile("[;&|\n()`]")
	slashFlagRe = regexp.MustCompile(`^/[A-Za-z]$`)
)

// normalizeExecutable reduces an executable path to its lower-cased base
// name, accepting both / and \ separators.
func normalizeExecutable(executable string) string {
	base := strings.ToLower(path.Base(strings.ReplaceAll(executable, `\`, "/")))
	return strings.TrimSuffix(base, ".exe")
}

// CommandLine renders executable and args as a single lower-cased line.
func CommandLine(executable string, args ...string) string {
	base := normalizeExecutable(executable)
	if len(args) == 0 {
		return base
	}
	return base + " " + strings.ToLower(strings.Join(args, " "))
}

// segments splits an invocation on command separators (; && || | & and
// subshell delimiters) into word lists. Case of the arguments is preserved.
func segments(executable string, args ...string) [][]string {
	line := strings.Join(append([]string{normalizeExecutable(executable)}, args...), " ")
	var out [][]string
	for _, part := range separatorRe.Split(line, -1) {
		var words []string
		for _, w := range strings.Fields(part) {
			if w = strings.Trim(w, `"'`); w != "" {
				words = append(words, w)
			}
		}
		if len(words) > 0 {
			out = append(out, words)
		}
	}
	return out
}

// unwrap strips a leading wrapper and its options. It reports false when
// words does not start with a known wrapper.
func unwrap(words []string) ([]string, bool) {
	w, ok := wrappers[normalizeExecutable(words[0])]
	if !ok {
		return nil, false
	}

	rest := words[1:]
options:
	for len(rest) > 0 {
		word := rest[0]
		flag := word
		if w.foldFlags {
			flag = strings.ToLower(word)
		}
		switch {
		case strings.HasPrefix(word, "-") || (w.valueFlags[flag] && strings.HasPrefix(word, "+")):
			rest = rest[1:]
			if w.valueFlags[flag] && len(rest) > 0 {
				rest = rest[1:]
			}
		case w.slashFlags && slashFlagRe.MatchString(word):
			rest = rest[1:]
		case w.assignments && strings.Index(word, "=") > 0:
			rest = rest[1:]
		default:
			break options
		}
	}

	for i := 0; i < w.positional && len(rest) > 0; i++ {
		rest = rest[1:]
	}
	return rest, true
}

func classifySegment(words []string) Level {
	for len(words) > 0 {
		line := strings.ToLower(strings.Join(append([]string{normalizeExecutable(words[0])}, words[1:]...), " "))
		for _, r := range rules {
			if r.matches(line) {
				return Destructive
			}
		}

		rest, ok := unwrap(words)
		if !ok {
			break
		}
		words = rest
	}
	return Safe
}

// Classify examines an invocation and returns its safety level. Every
// command segment is checked, and wrappers such as env, xargs, timeout or
// sh -c are looked through to the command they run.
func Classify(executable string, args ...string) Level {
	compileRules()
	for _, words := range segments(executable, args...) {
		if classifySegment(words) == Destructive {
			return Destructive
		}
	}
	return Safe
}

func (l Level) String() string {
	if l == Destructive {
		return "destructive"
	}
	return "safe"
}
