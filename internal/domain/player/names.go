package player

import "github.com/riskibarqy/nations-league/internal/platform/random"

var firstNames = []string{
	"Abel", "Tunde", "Kwame", "Amina", "Fatou", "Sibusiso", "Mohamed", "Lindiwe",
	"Samuel", "Chidi", "Aisha", "Kofi", "Nia", "Thabo", "Zola", "Ama", "Tariq",
	"Ngozi", "Keita", "Mamadou", "Youssef", "Kwesi", "Nkosi", "Sekou", "Amara",
	"Blessing", "Emmanuel", "Chiamaka", "Tendai", "Rashid", "Kabiru", "Jelani",
}

var lastNames = []string{
	"Mensah", "Nkosi", "Adomako", "Okeke", "Mokoena", "Diallo", "Mohammed",
	"Kamara", "Abebe", "Chukwu", "Dlamini", "Kone", "Otieno", "Sekou",
	"Toure", "Ndlovu", "Okafor", "Musa", "Traore", "Balogun", "Zuma",
}

// RandomName returns a plausible player name. Uniqueness within a squad
// is the caller's concern.
func RandomName(rng random.Source) string {
	first := firstNames[rng.Intn(len(firstNames))]
	last := lastNames[rng.Intn(len(lastNames))]
	return first + " " + last
}
