package dashboard

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// StatCard is one placeholder summary card.
type StatCard struct {
	Label string
	Value int
	Emoji string
}

// FormattedValue renders the value with locale digit grouping.
func (s StatCard) FormattedValue() string {
	return message.NewPrinter(language.English).Sprintf("%d", s.Value)
}

// Stats returns the fixed summary cards.
func Stats() []StatCard {
	return []StatCard{
		{Label: "Todos", Value: 12, Emoji: "📝"},
		{Label: "Completed", Value: 8, Emoji: "✅"},
		{Label: "Pending", Value: 4, Emoji: "⏳"},
		{Label: "Users", Value: 5, Emoji: "👥"},
	}
}

// GalleryImage is a placeholder image fetched from the image service by seed.
type GalleryImage struct {
	Seed int
	URL  string
	Alt  string
}

const galleryCount = 6

// Gallery returns the gallery images served from baseURL.
func Gallery(baseURL string) []GalleryImage {
	base := strings.TrimRight(baseURL, "/")
	images := make([]GalleryImage, 0, galleryCount)
	for n := 1; n <= galleryCount; n++ {
		images = append(images, GalleryImage{
			Seed: n,
			URL:  fmt.Sprintf("%s/400/200?random=%d", base, n),
			Alt:  fmt.Sprintf("Image %d", n),
		})
	}
	return images
}

// Task is a placeholder list entry.
type Task struct {
	Number int
	Done   bool
}

// Title is the label shown for the task.
func (t Task) Title() string { return fmt.Sprintf("Task %d", t.Number) }

// Ref is the display identifier, offset from the task number.
func (t Task) Ref() string { return fmt.Sprintf("#ID%d", t.Number+100) }

const taskCount = 15

// Tasks returns the placeholder task list; odd-numbered tasks are done.
func Tasks() []Task {
	tasks := make([]Task, 0, taskCount)
	for n := 1; n <= taskCount; n++ {
		tasks = append(tasks, Task{Number: n, Done: n%2 == 1})
	}
	return tasks
}

// NavItem is a sidebar navigation entry.
type NavItem struct {
	Label string
	Emoji string
}

// NavItems returns the sidebar entries.
func NavItems() []NavItem {
	return []NavItem{
		{Label: "Home", Emoji: "🏠"},
		{Label: "Analytics", Emoji: "📊"},
		{Label: "Settings", Emoji: "⚙️"},
	}
}
