package domain

const (
	AdminSettingsCollection = "adminSettings"
	// AdminSettingsID is the fixed id of the settings singleton.
	AdminSettingsID = "global"
)

// AdminSettings is the console-wide configuration document.
type AdminSettings struct {
	ID                 string         `json:"id"`
	AppVersion         string         `json:"appVersion"`
	AdminEmailList     []string       `json:"adminEmailList"`
	FeatureModeSetting map[string]any `json:"featureModeSetting"`
	Notifications      map[string]any `json:"notifications"`
}

// DefaultAdminSettings is written the first time the singleton is read.
func DefaultAdminSettings() AdminSettings {
	return AdminSettings{
		ID:             AdminSettingsID,
		AppVersion:     "1.0.0",
		AdminEmailList: []string{},
		FeatureModeSetting: map[string]any{
			"enablePremiumFeatures":  false,
			"enableUserRegistration": true,
		},
		Notifications: map[string]any{
			"enablePushNotifications": false,
			"reminderFrequency":       "daily",
		},
	}
}

func AdminSettingsFromDocument(id string, doc Document) AdminSettings {
	return AdminSettings{
		ID:                 id,
		AppVersion:         doc.String("appVersion"),
		AdminEmailList:     doc.Strings("adminEmailList"),
		FeatureModeSetting: doc.Map("featureModeSetting"),
		Notifications:      doc.Map("notifications"),
	}
}

func (s AdminSettings) ToDocument() Document {
	return Document{
		"appVersion":         s.AppVersion,
		"adminEmailList":     stringsOrEmpty(s.AdminEmailList),
		"featureModeSetting": mapOrEmpty(s.FeatureModeSetting),
		"notifications":      mapOrEmpty(s.Notifications),
	}
}

// HasAdminEmail reports whether email is on the admin list.
func (s AdminSettings) HasAdminEmail(email string) bool {
	for _, e := range s.AdminEmailList {
		if e == email {
			return true
		}
	}
	return false
}
