package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCmd_FileNotFound(t *testing.T) {
	err := runValidate(validateCmd, []string{"nonexistent.json"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidateCmd_ValidConfiguration(t *testing.T) {
	path := writeTestConfig(t, `{
		"hosting": {"provider": "gitea", "base_url": "https://git.example.com", "token": "secret"},
		"directory": {
			"host": "ldaps://ldap.example.com",
			"bind_dn": "cn=sync,dc=example,dc=com",
			"bind_password": "secret",
			"search_base": "ou=groups,dc=example,dc=com",
			"search_filter": "(objectClass=posixGroup)"
		},
		"mapping": {"adm": ["acme/developers"], "ops": ["acme/ops", "acme/developers"]}
	}`)

	validateRemote = false
	err := runValidate(validateCmd, []string{path})
	assert.NoError(t, err)
}

func TestValidateCmd_MalformedTeamReference(t *testing.T) {
	path := writeTestConfig(t, `{
		"hosting": {"provider": "gitea", "base_url": "https://git.example.com", "token": "secret"},
		"directory": {
			"host": "ldaps://ldap.example.com",
			"bind_dn": "cn=sync,dc=example,dc=com",
			"bind_password": "secret",
			"search_base": "ou=groups,dc=example,dc=com",
			"search_filter": "(objectClass=posixGroup)"
		},
		"mapping": {"adm": ["justateam"]}
	}`)

	err := runValidate(validateCmd, []string{path})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "org/team")
}
