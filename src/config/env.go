package config

import (
	"os"
	"regexp"
)

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// ExpandEnvVars replaces ${VAR} patterns with environment variable values.
func ExpandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]

		value, exists := os.LookupEnv(varName)
		if exists {
			return value
		}

		// Unknown variables are kept verbatim.
		return match
	})
}

// expandProjectEnvVars keeps credentials out of committed config files.
func expandProjectEnvVars(project *Project) {
	project.ProjectID = ExpandEnvVars(project.ProjectID)
	project.AccessToken = ExpandEnvVars(project.AccessToken)
	project.APIURL = ExpandEnvVars(project.APIURL)

	for i := range project.Download {
		project.Download[i].Mirror = ExpandEnvVars(project.Download[i].Mirror)
	}
}

// expandAliasEnvVars expands environment variables in all alias fields.
func expandAliasEnvVars(alias *Alias) {
	alias.Endpoint = ExpandEnvVars(alias.Endpoint)
	alias.Region = ExpandEnvVars(alias.Region)
	alias.Bucket = ExpandEnvVars(alias.Bucket)
	alias.Prefix = ExpandEnvVars(alias.Prefix)
	alias.AccessKey = ExpandEnvVars(alias.AccessKey)
	alias.SecretKey = ExpandEnvVars(alias.SecretKey)
}
