package memory

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/nations-league/internal/domain/team"
	"github.com/riskibarqy/nations-league/internal/domain/user"
	"github.com/riskibarqy/nations-league/internal/platform/random"
)

const SeedAdminID = "admin-01"

type seedFederation struct {
	Country string
	Manager string
}

var seedFederations = []seedFederation{
	{Country: "Kenya", Manager: "Benni McCarthy"},
	{Country: "Mali", Manager: "Tom Saintfiet"},
	{Country: "Ghana", Manager: "Otto Addo"},
	{Country: "Senegal", Manager: "Pape Thiaw"},
	{Country: "Nigeria", Manager: "Eric Chelle"},
	{Country: "Morocco", Manager: "Walid Regragui"},
	{Country: "Egypt", Manager: "Hossam Hassan"},
	{Country: "Tunisia", Manager: "Sami Trabelsi"},
}

// SeedTeams generates a full eight-team field with rolled squads. The
// source controls the rolls, so a fixed seed yields a reproducible
// field for demos and tests.
func SeedTeams(rng random.Source) ([]team.Team, error) {
	out := make([]team.Team, 0, len(seedFederations))
	for _, fed := range seedFederations {
		generated, err := team.Generate(rng, fed.Country, fed.Manager, SeedAdminID)
		if err != nil {
			return nil, fmt.Errorf("seed team %s: %w", fed.Country, err)
		}
		out = append(out, generated)
	}

	return out, nil
}

func SeedUsers() []user.User {
	out := []user.User{
		{ID: SeedAdminID, Email: "admin@nationsleague.example", Role: user.RoleAdmin, DisplayName: "League Admin"},
	}
	for i, fed := range seedFederations {
		out = append(out, user.User{
			ID:          fmt.Sprintf("rep-%02d", i+1),
			Email:       fmt.Sprintf("federation@%s.example", strings.ToLower(fed.Country)),
			Role:        user.RoleRepresentative,
			Country:     fed.Country,
			DisplayName: fmt.Sprintf("%s Federation", fed.Country),
		})
	}

	return out
}
