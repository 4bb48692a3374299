package motivation

import (
	"strings"
	"time"

	"github.com/Shuaibullattil/daily-motivation/internal/domain/profile"
)

const dateLayout = "January 02, 2006"

type PromptInput struct {
	Tone  string
	Today time.Time
	Name  string
	Role  string
	About profile.About
}

func BuildPrompt(in PromptInput) string {
	var b strings.Builder

	b.WriteString("Today is " + in.Today.Format(dateLayout) + ".\n")
	b.WriteString("Write a " + in.Tone + " and heartfelt good morning motivational paragraph for " + subject(in.Name, in.Role) + ".\n")
	b.WriteString("Background: " + in.About.Background + "\n")
	b.WriteString("Dreams: " + in.About.Dreams + "\n")
	b.WriteString("Challenges: " + in.About.Challenges + "\n")
	b.WriteString("Values: " + in.About.Values + "\n")
	b.WriteString("\n")
	b.WriteString("Write as if you're someone who has seen their struggles and growth; ")
	b.WriteString("make it real, emotional, and personal. Avoid sounding robotic or generic.\n")
	b.WriteString("Output only a single short paragraph (no bullet points, no greetings).")

	return b.String()
}

func subject(name, role string) string {
	name = strings.TrimSpace(name)
	role = strings.TrimSpace(role)

	switch {
	case name != "" && role != "":
		return name + ", a " + role
	case name != "":
		return name
	case role != "":
		return "a " + role
	default:
		return "me"
	}
}
