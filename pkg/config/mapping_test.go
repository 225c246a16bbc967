package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTeamRef(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TeamRef
		wantErr bool
	}{
		{
			name:  "simple",
			input: "admin/owners",
			want:  TeamRef{Org: "admin", Team: "owners"},
		},
		{
			name:  "surrounding whitespace",
			input: "  acme/developers  ",
			want:  TeamRef{Org: "acme", Team: "developers"},
		},
		{
			name:  "mixed case lowered",
			input: "Acme/DevOps",
			want:  TeamRef{Org: "acme", Team: "devops"},
		},
		{
			name:  "whitespace around parts",
			input: "acme / ops",
			want:  TeamRef{Org: "acme", Team: "ops"},
		},
		{
			name:    "missing slash",
			input:   "admins",
			wantErr: true,
		},
		{
			name:    "too many parts",
			input:   "a/b/c",
			wantErr: true,
		},
		{
			name:    "empty org",
			input:   "/owners",
			wantErr: true,
		},
		{
			name:    "empty team",
			input:   "admin/",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTeamRef(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTeamRef_String(t *testing.T) {
	ref := TeamRef{Org: "admin", Team: "owners"}
	assert.Equal(t, "admin/owners", ref.String())
}

func TestMapping_Teams(t *testing.T) {
	m := Mapping{
		"dev": {"acme/developers", "acme/ops"},
		"adm": {"admin/owners", "acme/ops"},
	}

	teams := m.Teams()

	// Deduplicated and sorted by org then team.
	require.Len(t, teams, 3)
	assert.Equal(t, []TeamRef{
		{Org: "acme", Team: "developers"},
		{Org: "acme", Team: "ops"},
		{Org: "admin", Team: "owners"},
	}, teams)
}

func TestMapping_TeamsEmpty(t *testing.T) {
	assert.Empty(t, Mapping{}.Teams())
	assert.Empty(t, Mapping(nil).Teams())
}

func TestMapping_TeamsSkipsUnparseable(t *testing.T) {
	m := Mapping{
		"adm": {"admin/owners", "not-a-team"},
	}

	teams := m.Teams()
	require.Len(t, teams, 1)
	assert.Equal(t, TeamRef{Org: "admin", Team: "owners"}, teams[0])
}

func TestMapping_GroupsFor(t *testing.T) {
	m := Mapping{
		"dev":    {"acme/developers"},
		"ops":    {"acme/developers", "acme/ops"},
		"admins": {"admin/owners"},
	}

	groups := m.GroupsFor(TeamRef{Org: "acme", Team: "developers"})
	assert.Equal(t, []string{"dev", "ops"}, groups)

	groups = m.GroupsFor(TeamRef{Org: "admin", Team: "owners"})
	assert.Equal(t, []string{"admins"}, groups)

	assert.Empty(t, m.GroupsFor(TeamRef{Org: "other", Team: "team"}))
}

func TestMapping_Groups(t *testing.T) {
	m := Mapping{
		"zeta": {"a/b"},
		"alfa": {"a/b"},
	}

	assert.Equal(t, []string{"alfa", "zeta"}, m.Groups())
}
