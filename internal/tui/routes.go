package tui

// Route identifiers. These are the sole addressing scheme between
// screens; the set is closed at startup and case-sensitive.
const (
	RouteSplash             = "/splash"
	RouteOnboardingWelcome  = "/onboarding/welcome"
	RouteOnboardingFeatures = "/onboarding/features"
	RouteOnboardingReady    = "/onboarding/ready"
	RouteOnboardingTutorial = "/onboarding/tutorial"
	RouteOnboardingStartup  = "/onboarding/startup"
	RouteLogin              = "/auth/login"
	RouteRegister           = "/auth/register"
	RouteHome               = "/home"
	RouteRecording          = "/recording"
	RoutePlayback           = "/playback"
	RouteFeedback           = "/feedback"
	RouteFillerWords        = "/filler-words"
	RouteAdvancedAnalysis   = "/advanced-analysis"
	RouteHistory            = "/history"
	RouteSearch             = "/search"
	RouteProfile            = "/profile"
	RouteProgress           = "/progress"
	RouteSettings           = "/settings"
	RouteNotifications      = "/notifications"
	RoutePayment            = "/payment"
)

// AllRoutes lists every identifier the table must carry. /splash is the
// mandatory initial route.
func AllRoutes() []string {
	return []string{
		RouteSplash,
		RouteOnboardingWelcome,
		RouteOnboardingFeatures,
		RouteOnboardingReady,
		RouteOnboardingTutorial,
		RouteOnboardingStartup,
		RouteLogin,
		RouteRegister,
		RouteHome,
		RouteRecording,
		RoutePlayback,
		RouteFeedback,
		RouteFillerWords,
		RouteAdvancedAnalysis,
		RouteHistory,
		RouteSearch,
		RouteProfile,
		RouteProgress,
		RouteSettings,
		RouteNotifications,
		RoutePayment,
	}
}
