// Privacy Image Editor - mark and redact sensitive regions in photos
package main

import (
	"flag"
	"os"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/sirupsen/logrus"

	"privacy-image-editor/internal/gui"
	"privacy-image-editor/internal/interaction"
)

const appID = "io.privacyimageeditor.app"

func main() {
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	touchMode := flag.Bool("touch", false, "Use touch-sized targets and defaults")
	imagePath := flag.String("image", "", "Image file to open on startup")
	flag.Parse()

	logger := initLogger(*debugMode)
	logger.WithFields(logrus.Fields{
		"debug_mode": *debugMode,
		"touch_mode": *touchMode,
	}).Info("Starting Privacy Image Editor")

	device := interaction.DeviceMouse
	if *touchMode {
		device = interaction.DeviceTouch
	}

	myApp := app.NewWithID(appID)
	myApp.SetIcon(theme.MediaPhotoIcon())
	myApp.Settings().SetTheme(theme.DefaultTheme())

	mainApp := gui.NewApplication(myApp, logger, device)
	if *imagePath != "" {
		mainApp.LoadImageFromPath(*imagePath)
	}
	mainApp.ShowAndRun()

	logger.Info("Application shutting down gracefully")
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
