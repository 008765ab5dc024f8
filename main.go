package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/modelsweep/modelsweep/internal/config"
	"github.com/modelsweep/modelsweep/internal/export"
	"github.com/modelsweep/modelsweep/internal/remove"
	"github.com/modelsweep/modelsweep/internal/scan"
	"github.com/modelsweep/modelsweep/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.modelsweep.modelsweep"
	AppName = "ModelSweep"

	WindowWidth  = 960
	WindowHeight = 600
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	logger.Info("starting", zap.String("app", AppName), zap.String("version", version))

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply the persisted theme before the first frame
	settings := config.NewSettings(myApp)
	myApp.Settings().SetTheme(ui.ThemeForName(settings.GetTheme()))

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	scanSvc := scan.NewService(logger)
	removeSvc := remove.NewService(logger)
	exportSvc := export.NewService(logger)

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, logger, scanSvc, removeSvc, exportSvc)

	// Show and run
	myWindow.ShowAndRun()
}
