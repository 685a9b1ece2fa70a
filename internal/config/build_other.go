//go:build !windows

package config

func defaultBuildCommand() []string {
	return []string{"./gradlew", ":mod:build"}
}
