// Package resources embeds the application icon and default configuration.
package resources

import (
	_ "embed"

	"fyne.io/fyne/v2"
)

//go:embed icons/app_256.png
var iconData []byte

//go:embed config.yaml
var DefaultConfig []byte

func GetAppIcon() fyne.Resource {
	return &fyne.StaticResource{
		StaticName:    "app_256.png",
		StaticContent: iconData,
	}
}
