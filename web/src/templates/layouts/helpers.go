package layouts

// SiteName is appended to every page title.
const SiteName = "Members"

// CalculateTitle returns the document title for a page.
func CalculateTitle(title string) string {
	if title != "" {
		return title + " - " + SiteName
	}
	return SiteName
}
