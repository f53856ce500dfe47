package config

// DefaultAdNetworks returns the script hosts of the ad networks the front end
// loads banners from. The same hosts are what an ad blocker filters, so the
// list doubles as the probe set for blocker detection.
func DefaultAdNetworks() []string {
	return []string{
		// Display
		"pagead2.googlesyndication.com",
		"googleads.g.doubleclick.net",

		// Direct link
		"otieu.com",
	}
}
