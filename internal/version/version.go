package version

import "github.com/fatih/color"

// Version information for the refcheck CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the plain semantic version of the CLI; [project].requires is checked against it.
	Version = "0.1.0"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Colored renders v with each numeric component in its own colour.
// Anything that does not look like major.minor.patch is returned unchanged.
func Colored(v string) string {
	parts := splitVersion(v)
	if parts == nil {
		return v
	}
	return versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(parts[2]) + parts[3]
}

// splitVersion returns major, minor, patch and the remaining suffix ("-dev", "+meta").
func splitVersion(v string) []string {
	out := make([]string, 0, 4)
	start := 0
	for i := 0; i <= len(v) && len(out) < 3; i++ {
		if i < len(v) && v[i] >= '0' && v[i] <= '9' {
			continue
		}
		if i == start {
			return nil
		}
		out = append(out, v[start:i])
		if len(out) < 3 {
			if i >= len(v) || v[i] != '.' {
				return nil
			}
			start = i + 1
		} else {
			out = append(out, v[i:])
		}
	}
	if len(out) != 4 {
		return nil
	}
	return out
}
