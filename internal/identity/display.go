package identity

import (
	"hash/fnv"
	"strings"

	"github.com/emrgen/mapshare/internal/model"
)

// Display is the render-ready identity of a collaborator.
type Display struct {
	Name     string
	Initials string
	Color    string
}

// avatarPalette mirrors the system accent colors the app renders avatars
// with. Indexed by a stable hash so every process picks the same color
// for the same identity.
var avatarPalette = []string{
	"#FF3B30", // red
	"#FF9500", // orange
	"#34C759", // green
	"#007AFF", // blue
	"#5856D6", // purple
	"#AF52DE", // violet
	"#FF2D92", // pink
	"#5AC8FA", // teal
}

// DisplayName derives a human readable name: given+family, then either
// part, then the email local part, then "Unknown".
func DisplayName(p *model.Participant) string {
	given := strings.TrimSpace(p.GivenName)
	family := strings.TrimSpace(p.FamilyName)

	switch {
	case given != "" && family != "":
		return given + " " + family
	case given != "":
		return given
	case family != "":
		return family
	case p.Email != "":
		if local, _, ok := strings.Cut(p.Email, "@"); ok && local != "" {
			return local
		}
		return p.Email
	default:
		return "Unknown"
	}
}

// Initials derives up to two uppercase initials with the same precedence
// as DisplayName, "?" when nothing is known.
func Initials(p *model.Participant) string {
	given := firstLetter(p.GivenName)
	family := firstLetter(p.FamilyName)

	switch {
	case given != "" && family != "":
		return given + family
	case given != "":
		return given
	case family != "":
		return family
	case p.Email != "":
		return firstLetter(p.Email)
	default:
		return "?"
	}
}

// AvatarColor returns a deterministic palette color for a seed string,
// typically the cloud identity ID.
func AvatarColor(seed string) string {
	h := fnv.New32a()
	h.Write([]byte(seed))
	return avatarPalette[h.Sum32()%uint32(len(avatarPalette))]
}

// DisplayOf bundles the derived display identity of a participant.
func DisplayOf(p *model.Participant) Display {
	return Display{
		Name:     DisplayName(p),
		Initials: Initials(p),
		Color:    AvatarColor(p.ID),
	}
}

// DisplayOfName derives a display identity from a free-text author name,
// used where only a name was recorded (comments, reactions).
func DisplayOfName(name string) Display {
	name = strings.TrimSpace(name)
	if name == "" {
		return Display{Name: "Unknown", Initials: "?", Color: AvatarColor("")}
	}

	initials := ""
	parts := strings.Fields(name)
	initials += firstLetter(parts[0])
	if len(parts) > 1 {
		initials += firstLetter(parts[len(parts)-1])
	}

	return Display{Name: name, Initials: initials, Color: AvatarColor(name)}
}

func firstLetter(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.ToUpper(string([]rune(s)[0]))
}
