package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"crambox/internal/cli/scheme/colours"
	"crambox/internal/config"
	"crambox/internal/server"
	"crambox/internal/study/box"
)

func main() {

	app := box.NewBox()

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		app.Cancel()
		app.Speech.Stop()
		fmt.Println("\n" + colours.Warning.Sprint("👋 Happy studying! 📦"))
		os.Exit(0)
	}()

	rootCmd := &cobra.Command{
		Use:   "crambox",
		Short: "📦 A study box of computer-science topics",
		Long: `
┌─────────────────────────────────────┐
│  📦 Welcome to crambox! 🧠          │
│  CS topics, explained and quizzed   │
│  right in your terminal ✨          │
└─────────────────────────────────────┘

crambox bundles explanations, analogies, code examples, curated links,
and quiz questions for core computer-science topics — B-Trees, DNS,
ICMP, CAP theorem, locking, and more.
		`,
		Run: func(cmd *cobra.Command, args []string) {
			app.ShowWelcome()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "📋 List available topics",
		Long:  "Display every topic in the catalog, with optional filters",
		Run:   app.ListTopics,
	}

	showCmd := &cobra.Command{
		Use:   "show [topic-id]",
		Short: "📖 Read a specific topic",
		Long:  "Render a topic's full study page, by id or from an interactive list",
		Run:   app.ShowTopic,
	}

	randomCmd := &cobra.Command{
		Use:   "random",
		Short: "🎲 Study a random topic",
		Long:  "Select and render a random topic from the catalog",
		Run:   app.RandomTopic,
	}

	quizCmd := &cobra.Command{
		Use:   "quiz [topic-id]",
		Short: "🧠 Quiz yourself on a topic",
		Long:  "Run a flashcard session over a topic's questions (random topic if omitted)",
		Run:   app.QuizTopic,
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "🔎 Verify corpus integrity",
		Long:  "Check every record for missing fields, malformed URLs, and incomplete questions",
		Run:   app.CheckCorpus,
	}

	exportCmd := &cobra.Command{
		Use:   "export [dir]",
		Short: "📤 Export a static JSON bundle",
		Long:  "Write the catalog as index.json plus per-topic JSON files",
		Run:   app.ExportBundle,
	}

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "📥 Import topics from a file",
		Long:  "Merge topics from a local JSON or YAML pack into this session's catalog",
		Run:   app.ImportPack,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "🌐 Serve the catalog over HTTP",
		Long:  "Expose the topic catalog as a read-only JSON API",
		Run: func(cmd *cobra.Command, args []string) {
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = viper.GetString("server.addr")
			}
			if err := server.Run(app.Catalog(), addr); err != nil {
				colours.Error.Printf("❌ Server error: %v\n", err)
				os.Exit(1)
			}
		},
	}

	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "⚙️ Show active settings",
		Long:  "Display speech, rendering, and server configuration",
		Run:   app.ConfigureSettings,
	}

	listCmd.Flags().StringP("category", "c", "", "Filter by category")
	listCmd.Flags().StringP("tag", "t", "", "Filter by tag")
	listCmd.Flags().StringP("search", "s", "", "Free-text search over titles and summaries")
	showCmd.Flags().BoolP("interactive", "i", false, "Interactive topic selection")
	showCmd.Flags().Bool("plain", false, "Print raw markdown without terminal styling")
	showCmd.Flags().Bool("speak", false, "Read the topic aloud")
	randomCmd.Flags().Bool("plain", false, "Print raw markdown without terminal styling")
	randomCmd.Flags().Bool("speak", false, "Read the topic aloud")
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")

	rootCmd.AddCommand(listCmd, showCmd, randomCmd, quizCmd, checkCmd,
		exportCmd, importCmd, serveCmd, settingsCmd)

	// Pack management subcommands
	app.AddPackCommands(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		colours.Error.Printf("❌ Error: %v\n", err)
		os.Exit(1)
	}
}

// Configuration management with Viper
func init() {
	viper.SetConfigName("crambox")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.crambox")
	viper.AddConfigPath(".")

	config.SetDefaults()

	viper.ReadInConfig()
}
