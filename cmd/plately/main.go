package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"plately-client/internal/ads"
	"plately-client/internal/api"
	"plately-client/internal/app"
	"plately-client/internal/config"
	"plately-client/internal/fetch"
	"plately-client/internal/metrics"
	"plately-client/internal/session"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	application, err := app.New(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Replay anything left pending from a previous run before the command
	// talks to the backend.
	if err := application.Sync(ctx); err != nil {
		logger.Warn("startup sync failed", zap.Error(err))
	}

	switch os.Args[1] {
	case "login":
		runLogin(ctx, application)
	case "logout":
		if err := application.Logout(ctx); err != nil {
			log.Fatalf("Logout failed: %v", err)
		}
		fmt.Println("Signed out.")
	case "home":
		runHome(ctx, application)
	case "feed":
		runFeed(ctx, application)
	case "plans":
		runPlans(ctx, application)
	case "shopping":
		runShopping(ctx, application)
	case "notifications":
		runNotifications(ctx, application)
	case "campaign-estimate":
		runCampaignEstimate(os.Args[2:])
	case "clip":
		runClip(ctx, application)
	case "status":
		runStatus(ctx, application, cfg)
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		if err := application.Metrics.Cleanup(ctx, *days); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Println("Old request metrics removed.")
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runLogin(ctx context.Context, application *app.App) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("Failed to read email: %v", err)
	}

	fmt.Print("Password: ")
	passBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}

	user, err := application.Login(ctx, strings.TrimSpace(email), string(passBytes))
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}

	fmt.Printf("Signed in as %s.\n", user.Username)
	switch application.Session.Gate() {
	case session.StepUserType:
		fmt.Println("Onboarding: pick an account type first (home-cook or creator).")
	case session.StepInterests:
		fmt.Println("Onboarding: pick your interests to finish setup.")
	}
}

func runHome(ctx context.Context, application *app.App) {
	requireSession(ctx, application)

	s := application.Suggest(time.Now())
	user := application.Session.Current()

	fmt.Printf("%s, %s!\n", s.Greeting, user.DisplayName)
	fmt.Printf("It's %s in %s — how about %s?\n", s.TimeOfDay, s.Season, s.Meal)
	if s.HasWeather {
		fmt.Printf("Weather says %s: try %s.\n", s.Weather, s.WeatherDish)
	}
}

func runFeed(ctx context.Context, application *app.App) {
	requireSession(ctx, application)

	feed := fetch.NewResource(
		func(ctx context.Context) ([]api.Recipe, error) {
			return application.Client.TrendingRecipes(ctx)
		},
		fetch.SliceEmpty[api.Recipe],
	)
	defer feed.Close()

	switch feed.Load(ctx) {
	case fetch.StateError:
		_, _, err := feed.Snapshot()
		log.Fatalf("Failed to load feed: %v", err)
	case fetch.StateEmpty:
		fmt.Println("No trending recipes right now.")
	default:
		_, recipes, _ := feed.Snapshot()
		fmt.Println("=== TRENDING ===")
		for _, r := range recipes {
			fmt.Printf("• %s by %s (%d likes)\n", r.Title, r.Creator.Username, r.Likes)
		}
	}
}

func runPlans(ctx context.Context, application *app.App) {
	requireSession(ctx, application)

	plans, err := application.Client.MealPlans(ctx)
	if err != nil {
		log.Fatalf("Failed to load meal plans: %v", err)
	}
	if len(plans) == 0 {
		fmt.Println("No meal plans yet.")
		return
	}
	for _, p := range plans {
		fmt.Printf("%s  %s (week of %s, %d meals)\n", p.ID, p.Name, p.WeekStart, len(p.Meals))
	}
}

func runShopping(ctx context.Context, application *app.App) {
	requireSession(ctx, application)

	if len(os.Args) < 3 {
		log.Fatal("Usage: plately shopping <plan-id>")
	}

	report, err := application.Shopping(ctx, os.Args[2])
	if err != nil {
		log.Fatalf("Failed to load shopping list: %v", err)
	}

	fmt.Printf("%d items, %d still to buy.\n", report.ItemCount, report.UncheckedCt)
	fmt.Printf("Remaining cost: %.2f (weekly budget %.2f)\n", report.Remaining, report.Budget)
	if report.OverBudget {
		fmt.Println("⚠ Over budget.")
	}

	if len(report.BestStores) > 0 {
		fmt.Println("\nCheapest stores for what's left:")
		for _, st := range report.BestStores {
			fmt.Printf("  %-15s %.2f (%d items)\n", st.Store, st.Total, st.Items)
		}
	}
}

func runNotifications(ctx context.Context, application *app.App) {
	requireSession(ctx, application)

	if err := application.Inbox.Load(ctx); err != nil {
		log.Fatalf("Failed to load notifications: %v", err)
	}

	if len(os.Args) > 2 && os.Args[2] == "read-all" {
		if err := application.Inbox.MarkAllRead(ctx); err != nil {
			log.Fatalf("Failed to mark notifications read: %v", err)
		}
		fmt.Println("All notifications marked read.")
		return
	}

	all := application.Inbox.All()
	if len(all) == 0 {
		fmt.Println("No notifications.")
		return
	}
	for _, n := range all {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Printf("%s [%s] %s\n", marker, n.Type, n.Content)
	}
	fmt.Printf("\n%d unread.\n", application.Inbox.UnreadCount())
}

func runCampaignEstimate(args []string) {
	cmd := flag.NewFlagSet("campaign-estimate", flag.ExitOnError)
	name := cmd.String("name", "", "Campaign name")
	objective := cmd.String("objective", "awareness", "awareness, traffic, engagement or conversions")
	adType := cmd.String("ad-type", "feed", "feed, reel or story")
	budget := cmd.Float64("budget", 0, "Budget in account currency")
	budgetType := cmd.String("budget-type", "daily", "daily or total")
	duration := cmd.Int("duration", 7, "Campaign duration in days")
	interests := cmd.String("interests", "", "Comma-separated interest list")
	ageMin := cmd.Int("age-min", 0, "Minimum targeted age")
	ageMax := cmd.Int("age-max", 0, "Maximum targeted age")
	location := cmd.String("location", "", "Targeted location, empty for worldwide")
	cmd.Parse(args)

	campaign := &ads.Campaign{
		Name:       *name,
		Objective:  *objective,
		AdType:     *adType,
		Budget:     *budget,
		BudgetType: *budgetType,
		Duration:   *duration,
		Targeting: ads.Targeting{
			AgeMin:   *ageMin,
			AgeMax:   *ageMax,
			Location: *location,
		},
	}
	if *interests != "" {
		campaign.Targeting.Interests = strings.Split(*interests, ",")
	}

	if err := campaign.Validate(); err != nil {
		log.Fatalf("Invalid campaign: %v", err)
	}

	estimate := ads.EstimateReach(campaign)
	fmt.Printf("Total budget: %.2f over %d days\n", campaign.TotalBudget(), campaign.Duration)
	fmt.Printf("Adjusted CPM: %.2f\n", estimate.AdjustedCPM)
	fmt.Printf("Estimated reach: %d – %d impressions (point estimate %d)\n",
		estimate.MinReach, estimate.MaxReach, estimate.Impressions)
}

func runClip(ctx context.Context, application *app.App) {
	requireSession(ctx, application)

	if len(os.Args) < 3 {
		log.Fatal("Usage: plately clip <url>")
	}

	recipe, err := application.Clipper.ClipURL(ctx, os.Args[2])
	if err != nil {
		log.Fatalf("Failed to clip recipe: %v", err)
	}
	fmt.Printf("Saved draft %q (%s).\n", recipe.Title, recipe.ID)
}

func runStatus(ctx context.Context, application *app.App, cfg *config.Config) {
	pending, err := application.Queue.PendingCount(ctx)
	if err != nil {
		log.Fatalf("Failed to count pending commands: %v", err)
	}

	usage, err := application.Metrics.GetDailyUsage(ctx, 7)
	if err != nil {
		log.Fatalf("Failed to load request metrics: %v", err)
	}

	health := metrics.GetSysHealth(cfg.DataDir)

	fmt.Printf("Pending offline commands: %d\n", pending)
	fmt.Println("\nRecent API activity:")
	if len(usage) == 0 {
		fmt.Println("  (no data yet)")
	}
	for _, d := range usage {
		fmt.Printf("  %s: %d requests, %d failures, avg %.0fms\n", d.Date, d.Requests, d.Failures, d.AvgLatencyMS)
	}

	fmt.Println("\nSystem health:")
	fmt.Printf("  RAM: %dMB alloc / %dMB sys\n", health.AllocMB, health.SysMB)
	fmt.Printf("  Goroutines: %d\n", health.Goroutines)
	fmt.Printf("  Data dir size: %s\n", health.DataDiskSize)
}

// requireSession restores the stored session and exits when the user is not
// signed in.
func requireSession(ctx context.Context, application *app.App) {
	ok, err := application.Restore(ctx)
	if err != nil {
		log.Fatalf("Failed to restore session: %v", err)
	}
	if !ok {
		log.Fatal("Not signed in. Run `plately login` first.")
	}
}

func printUsage() {
	fmt.Println("Usage: plately <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  login              Sign in and store the session")
	fmt.Println("  logout             Sign out")
	fmt.Println("  home               Show the home greeting and meal suggestion")
	fmt.Println("  feed               Show trending recipes")
	fmt.Println("  plans              List your meal plans")
	fmt.Println("  shopping <plan>    Shopping list totals and best stores")
	fmt.Println("  notifications      Show notifications (add read-all to clear)")
	fmt.Println("  campaign-estimate  Validate a campaign and estimate its reach")
	fmt.Println("  clip <url>         Import a recipe from a web page as a draft")
	fmt.Println("  status             Pending commands, API usage and health")
	fmt.Println("  metrics-cleanup    Remove old request metrics")
}
