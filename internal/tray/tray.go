package tray

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/PixPMusic/gopher-surface/internal/config"
	"github.com/PixPMusic/gopher-surface/internal/startup"
)

// Callbacks for tray menu actions
type Callbacks struct {
	OnOpen func()
	OnQuit func()
}

// Setup initializes the system tray using Fyne's built-in support
func Setup(app fyne.App, cfg *config.Config, callbacks Callbacks) {
	desk, ok := app.(desktop.App)
	if !ok {
		return
	}

	openItem := fyne.NewMenuItem("Open Surface", func() {
		if callbacks.OnOpen != nil {
			callbacks.OnOpen()
		}
	})

	startupItem := fyne.NewMenuItem("Open at Startup", nil)
	startupItem.Checked = cfg.OpenAtStartup

	quitItem := fyne.NewMenuItem("Quit", func() {
		if callbacks.OnQuit != nil {
			callbacks.OnQuit()
		}
	})

	menu := fyne.NewMenu("GopherSurface",
		openItem,
		fyne.NewMenuItemSeparator(),
		startupItem,
		fyne.NewMenuItemSeparator(),
		quitItem,
	)

	// Set the action after menu is created so we can refresh it
	startupItem.Action = func() {
		enable := !startupItem.Checked
		var err error
		if enable {
			err = startup.Enable()
		} else {
			err = startup.Disable()
		}
		if err != nil {
			slog.Error("failed to change launch at login", "enable", enable, "err", err)
			return
		}
		startupItem.Checked = enable
		cfg.OpenAtStartup = enable
		if err := cfg.Save(); err != nil {
			slog.Error("failed to save config", "err", err)
		}
		menu.Refresh()
	}

	desk.SetSystemTrayMenu(menu)
	desk.SetSystemTrayIcon(theme.MediaPlayIcon())
}
