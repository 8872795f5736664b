package domain

const (
	SettingGoogleVerification = "google_verification"
	SettingBingVerification   = "bing_verification"
	SettingGoogleAnalytics    = "google_analytics"
	SettingSiteTitle          = "site_title"
	SettingSiteDescription    = "site_description"
	SettingContactEmail       = "contact_email"
	SettingSocialFacebook     = "social_facebook"
	SettingSocialTwitter      = "social_twitter"
	SettingSocialInstagram    = "social_instagram"
)

const DefaultSiteTitle = "Stream Stick Pro"

// SettingKeys lists the keys the dashboard exposes, in display order.
var SettingKeys = []string{
	SettingGoogleVerification,
	SettingBingVerification,
	SettingGoogleAnalytics,
	SettingSiteTitle,
	SettingSiteDescription,
	SettingContactEmail,
	SettingSocialFacebook,
	SettingSocialTwitter,
	SettingSocialInstagram,
}

type SiteSettings map[string]string

// WithDefaults returns a copy holding every known key; unknown stored keys
// are dropped and missing or empty ones fall back to their defaults.
func (s SiteSettings) WithDefaults() SiteSettings {
	out := make(SiteSettings, len(SettingKeys))
	for _, key := range SettingKeys {
		out[key] = s[key]
	}
	if out[SettingSiteTitle] == "" {
		out[SettingSiteTitle] = DefaultSiteTitle
	}
	return out
}
