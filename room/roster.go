package room

import "fmt"

// avatarTemplate derives a user's avatar from their name. The server never
// transmits avatars; every client derives the same URL from the same name.
const avatarTemplate = "https://avatars.dicebear.com/api/adventurer-neutral/%s.svg"

// Profile is one roster entry.
type Profile struct {
	Name      string
	AvatarURL string
}

// AvatarURL returns the avatar location for a user name.
func AvatarURL(name string) string {
	return fmt.Sprintf(avatarTemplate, name)
}

// Rebuild maps a roster announcement to profiles. Order is kept and
// duplicate names stay duplicated; roster hygiene is the server's job.
func Rebuild(names []string) []Profile {
	profiles := make([]Profile, 0, len(names))
	for _, name := range names {
		profiles = append(profiles, Profile{Name: name, AvatarURL: AvatarURL(name)})
	}
	return profiles
}

// Resolve finds the first profile with the given name.
func Resolve(roster []Profile, name string) (Profile, bool) {
	for _, p := range roster {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// Fallback builds a stand-in profile for a sender the roster does not know.
func Fallback(name string) Profile {
	return Profile{Name: name, AvatarURL: AvatarURL(name)}
}
