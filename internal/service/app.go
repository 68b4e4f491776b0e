package service

type App struct {
	Dashboard *DashboardService
	User      *UserService
	Webhook   *WebhookService
	Automerge *AutomergeService
}

func NewApp(dashboard *DashboardService, user *UserService, webhook *WebhookService, automerge *AutomergeService) *App {
	return &App{
		Dashboard: dashboard,
		User:      user,
		Webhook:   webhook,
		Automerge: automerge,
	}
}
