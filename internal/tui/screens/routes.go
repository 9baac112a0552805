package screens

import "github.com/speaksharp/speaksharp/internal/tui"

// Routes builds the closed route table. The factory closures capture
// deps; the composition root assigns deps.Router after constructing the
// router from the returned table.
func Routes(deps *Deps) *tui.RouteTable {
	return tui.NewRouteTable([]tui.Route{
		{ID: tui.RouteSplash, Factory: func() tui.Screen { return NewSplash(deps) }},
		{ID: tui.RouteOnboardingWelcome, Factory: func() tui.Screen { return NewOnboarding(deps, stepWelcome) }},
		{ID: tui.RouteOnboardingFeatures, Factory: func() tui.Screen { return NewOnboarding(deps, stepFeatures) }},
		{ID: tui.RouteOnboardingReady, Factory: func() tui.Screen { return NewOnboarding(deps, stepReady) }},
		{ID: tui.RouteOnboardingTutorial, Factory: func() tui.Screen { return NewOnboarding(deps, stepTutorial) }},
		{ID: tui.RouteOnboardingStartup, Factory: func() tui.Screen { return NewOnboarding(deps, stepStartup) }},
		{ID: tui.RouteLogin, Factory: func() tui.Screen { return NewLogin(deps) }},
		{ID: tui.RouteRegister, Factory: func() tui.Screen { return NewRegister(deps) }},
		{ID: tui.RouteHome, Factory: func() tui.Screen { return NewHome(deps) }},
		{ID: tui.RouteRecording, Factory: func() tui.Screen { return NewRecording(deps) }},
		{ID: tui.RoutePlayback, Factory: func() tui.Screen { return NewPlayback(deps) }},
		{ID: tui.RouteFeedback, Factory: func() tui.Screen { return NewFeedback(deps) }},
		{ID: tui.RouteFillerWords, Factory: func() tui.Screen { return NewFillerWords(deps) }},
		{ID: tui.RouteAdvancedAnalysis, Factory: func() tui.Screen { return NewAdvancedAnalysis(deps) }},
		{ID: tui.RouteHistory, Factory: func() tui.Screen { return NewHistory(deps) }},
		{ID: tui.RouteSearch, Factory: func() tui.Screen { return NewSearch(deps) }},
		{ID: tui.RouteProfile, Factory: func() tui.Screen { return NewProfile(deps) }},
		{ID: tui.RouteProgress, Factory: func() tui.Screen { return NewProgress(deps) }},
		{ID: tui.RouteSettings, Factory: func() tui.Screen { return NewSettings(deps) }},
		{ID: tui.RouteNotifications, Factory: func() tui.Screen { return NewNotifications(deps) }},
		{ID: tui.RoutePayment, Factory: func() tui.Screen { return NewPayment(deps) }},
	})
}
