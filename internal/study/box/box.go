package box

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"crambox/internal/bundle"
	"crambox/internal/check"
	"crambox/internal/cli/scheme/colours"
	"crambox/internal/config"
	"crambox/internal/content"
	"crambox/internal/domain/catalog"
	"crambox/internal/domain/catalog/packs"
	"crambox/internal/domain/topic"
	"crambox/internal/render"
	"crambox/internal/study/speech"
)

// Box is the application: the loaded topic catalog plus the speech engine
// and a cancellable context for Ctrl+C handling.
type Box struct {
	catalog *catalog.Catalog
	Speech  speech.Engine
	ctx     context.Context
	Cancel  context.CancelFunc
}

func NewBox() *Box {
	engine, err := speech.NewEngine(speech.Config{
		Type:   viper.GetString("speech.type"),
		Voice:  viper.GetString("speech.voice"),
		Speed:  viper.GetFloat64("speech.speed"),
		Volume: viper.GetFloat64("speech.volume"),
	})
	if err != nil {
		logrus.WithError(err).Warn("speech engine unavailable, reading aloud disabled")
		engine = speech.NewMockEngine(speech.Config{Speed: 1.0, Volume: 1.0})
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Box{
		catalog: content.MustLoad(),
		Speech:  engine,
		ctx:     ctx,
		Cancel:  cancel,
	}
}

// Catalog exposes the loaded corpus; the serve command hands it to the HTTP
// server.
func (b *Box) Catalog() *catalog.Catalog {
	return b.catalog
}

func (b *Box) ShowWelcome() {
	fmt.Println()
	colours.Title.Println("📦 Welcome to crambox! 📦")
	fmt.Println()
	colours.Info.Println("📚 Available commands:")
	fmt.Println("  • crambox list      - Browse the topic catalog")
	fmt.Println("  • crambox show      - Read a topic in the terminal")
	fmt.Println("  • crambox random    - Study a surprise topic")
	fmt.Println("  • crambox quiz      - Test yourself on a topic")
	fmt.Println("  • crambox check     - Verify the corpus integrity")
	fmt.Println("  • crambox export    - Write a static JSON bundle")
	fmt.Println("  • crambox serve     - Serve the catalog over HTTP")
	fmt.Println()
	colours.Prompt.Println("✨ Pick a topic and start cramming! ✨")
}

// ListTopics prints the catalog, honouring the category/tag/search flags.
func (b *Box) ListTopics(cmd *cobra.Command, args []string) {
	category, _ := cmd.Flags().GetString("category")
	tag, _ := cmd.Flags().GetString("tag")
	query, _ := cmd.Flags().GetString("search")

	fmt.Println()
	colours.Title.Println("📚 Topic Catalog 📚")
	fmt.Println()

	topics := b.catalog.Select(catalog.Filter{
		Category: category,
		Tag:      tag,
		Query:    query,
	})

	count := 0
	for _, t := range topics {
		count++
		fmt.Printf("  %d. ", count)
		colours.Title.Printf("%s", t.Title)
		if t.Subtitle != "" {
			fmt.Printf(" — %s", t.Subtitle)
		}
		fmt.Println()
		fmt.Printf("     🗂  ")
		colours.Category.Printf("%s", t.Category)
		if len(t.Tags) > 0 {
			fmt.Printf(" | 🏷  %s", strings.Join(t.Tags, ", "))
		}
		fmt.Println()
		fmt.Printf("     💡 %s\n", t.Summary)
		colours.Info.Printf("     ID: %s\n", t.ID)
		fmt.Println()
	}

	if count == 0 {
		colours.Warning.Println("🔍 No topics found matching your criteria.")
	} else {
		colours.Success.Printf("✨ Found %d topics to study! ✨\n", count)
	}
}

// ShowTopic renders one topic, selected by id argument or interactively.
func (b *Box) ShowTopic(cmd *cobra.Command, args []string) {
	interactive, _ := cmd.Flags().GetBool("interactive")

	if len(args) == 0 || interactive {
		b.interactiveTopicSelection(cmd)
		return
	}

	t, ok := b.catalog.Get(args[0])
	if !ok {
		colours.Error.Printf("❌ Topic with ID '%s' not found!\n", args[0])
		b.suggestClose(args[0])
		return
	}

	b.displayTopic(cmd, t)
}

// RandomTopic picks and renders one topic at random.
func (b *Box) RandomTopic(cmd *cobra.Command, args []string) {
	t, ok := b.catalog.Random()
	if !ok {
		colours.Error.Println("❌ No topics available!")
		return
	}

	fmt.Println()
	colours.Prompt.Println("🎲 Random Topic Selection! 🎲")
	fmt.Println()

	b.displayTopic(cmd, t)
}

func (b *Box) interactiveTopicSelection(cmd *cobra.Command) {
	topics := b.catalog.All()
	if len(topics) == 0 {
		colours.Error.Println("❌ No topics available!")
		return
	}

	fmt.Println()
	colours.Title.Println("📚 Choose a Topic! 📚")
	fmt.Println()

	for i, t := range topics {
		fmt.Printf("%d. ", i+1)
		colours.Title.Printf("%s", t.Title)
		fmt.Printf(" (")
		colours.Category.Printf("%s", t.Category)
		fmt.Printf(")\n")
	}

	fmt.Println()
	colours.Prompt.Print("🌟 Enter the number of your topic (or 'q' to quit): ")

	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)

	if input == "q" || input == "quit" {
		colours.Warning.Println("👋 Maybe next time!")
		return
	}

	choice, err := strconv.Atoi(input)
	if err != nil || choice < 1 || choice > len(topics) {
		colours.Error.Println("❌ Invalid selection! Please try again.")
		return
	}

	b.displayTopic(cmd, topics[choice-1])
}

func (b *Box) displayTopic(cmd *cobra.Command, t topic.Topic) {
	plain, _ := cmd.Flags().GetBool("plain")
	speak, _ := cmd.Flags().GetBool("speak")

	if plain {
		fmt.Println(render.Markdown(t))
	} else {
		out, err := render.Terminal(t, viper.GetString("render.style"), viper.GetInt("render.width"))
		if err != nil {
			logrus.WithError(err).Warn("terminal rendering failed, falling back to plain markdown")
			fmt.Println(render.Markdown(t))
		} else {
			fmt.Print(out)
		}
	}

	if !speak {
		return
	}

	fmt.Println()
	colours.Success.Println("🎵 Reading the topic aloud... 🎵")
	fmt.Println("💡 Press Ctrl+C to stop anytime")
	fmt.Println()

	go func() {
		if err := b.Speech.Speak(render.SpeakableText(t)); err != nil {
			colours.Error.Printf("❌ Speech error: %v\n", err)
		} else {
			colours.Success.Println("✅ Done! 🌟")
		}
	}()

	b.waitForPlaybackInput()
}

func (b *Box) waitForPlaybackInput() {
	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-b.ctx.Done():
			return
		default:
			fmt.Print("\n⏸️  Press 'p' to pause/resume, 's' to stop, or Enter to continue: ")
			input, _ := reader.ReadString('\n')
			input = strings.TrimSpace(strings.ToLower(input))

			switch input {
			case "p", "pause":
				if b.Speech.IsPlaying() {
					b.Speech.Pause()
					colours.Warning.Println("⏸️  Paused")
				} else {
					b.Speech.Resume()
					colours.Success.Println("▶️  Resumed")
				}
			case "s", "stop":
				b.Speech.Stop()
				colours.Warning.Println("⏹️  Stopped")
				return
			case "":
				if !b.Speech.IsPlaying() {
					return
				}
			default:
				colours.Info.Println("ℹ️  Use 'p' for pause/resume, 's' to stop")
			}
		}
	}
}

// suggestClose lists ids sharing a prefix with the miss, which catches most
// typos of slug ids.
func (b *Box) suggestClose(id string) {
	var hits []string
	lower := strings.ToLower(id)
	for _, have := range b.catalog.IDs() {
		if strings.HasPrefix(have, lower) || strings.Contains(have, lower) {
			hits = append(hits, have)
		}
	}
	if len(hits) > 0 {
		colours.Info.Printf("💡 Did you mean: %s\n", strings.Join(hits, ", "))
	} else {
		colours.Info.Println("💡 Run 'crambox list' to see every topic id")
	}
}

// CheckCorpus runs the integrity checks and exits non-zero on failure so it
// can gate CI on content edits.
func (b *Box) CheckCorpus(cmd *cobra.Command, args []string) {
	fmt.Println()
	colours.Title.Println("🔎 Corpus Integrity Check 🔎")
	fmt.Println()

	report := check.Run(b.catalog)
	for _, issue := range report.Issues {
		colours.Error.Printf("  ✗ %s\n", issue)
	}

	if report.OK() {
		colours.Success.Printf("✅ %d topics checked, no issues found\n", report.Checked)
		return
	}

	colours.Error.Printf("❌ %d topics checked, %d issues\n", report.Checked, len(report.Issues))
	os.Exit(1)
}

// ExportBundle writes the static JSON bundle.
func (b *Box) ExportBundle(cmd *cobra.Command, args []string) {
	dir := "bundle"
	if len(args) > 0 {
		dir = args[0]
	}

	if err := bundle.Export(b.catalog, dir); err != nil {
		colours.Error.Printf("❌ Export failed: %v\n", err)
		os.Exit(1)
	}
	colours.Success.Printf("✅ Exported %d topics to %s\n", b.catalog.Len(), dir)
}

// ImportPack merges topics from a local JSON or YAML file into the session
// catalog and reports what arrived.
func (b *Box) ImportPack(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		colours.Error.Println("❌ Usage: crambox import <file.json|file.yaml>")
		return
	}

	pack, err := bundle.Import(args[0])
	if err != nil {
		colours.Error.Printf("❌ Import failed: %v\n", err)
		os.Exit(1)
	}

	added := 0
	for _, t := range pack.Topics {
		if err := b.catalog.Add(t); err != nil {
			colours.Warning.Printf("⚠️ Skipping %s: %v\n", t.ID, err)
			continue
		}
		added++
	}

	colours.Success.Printf("✅ Imported %d topics from %s\n", added, pack.Name)
	b.ListTopics(cmd, nil)
}

// ConfigureSettings shows the active configuration.
func (b *Box) ConfigureSettings(cmd *cobra.Command, args []string) {
	fmt.Println()
	colours.Title.Println("⚙️ Settings ⚙️")
	fmt.Println()

	colours.Prompt.Println("🎤 Speech:")
	fmt.Printf("  • Engine: %s (available: %v)\n", viper.GetString("speech.type"), speech.AvailableEngines())
	fmt.Printf("  • Voice: %s | Speed: %.1fx | Volume: %.0f%%\n",
		viper.GetString("speech.voice"),
		viper.GetFloat64("speech.speed"),
		viper.GetFloat64("speech.volume")*100)
	fmt.Println()

	colours.Prompt.Println("🖥  Rendering:")
	fmt.Printf("  • Style: %s | Width: %d\n", viper.GetString("render.style"), viper.GetInt("render.width"))
	fmt.Println()

	colours.Prompt.Println("🌐 Server:")
	fmt.Printf("  • Address: %s\n", viper.GetString("server.addr"))
	fmt.Println()

	colours.Info.Println("💡 Override any of these in $HOME/.crambox/crambox.yaml")
}

// AddPackCommands wires the remote-pack subcommands onto the root.
func (b *Box) AddPackCommands(rootCmd *cobra.Command) {
	packsCmd := &cobra.Command{
		Use:   "packs",
		Short: "📦 Manage downloadable topic packs",
		Long:  "Fetch, refresh, and inspect extra topic packs from a configured pack URL",
	}

	loadCmd := &cobra.Command{
		Use:   "load",
		Short: "📖 Load the remote topic pack",
		Run:   b.loadPack,
	}

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "🔄 Refresh the pack cache",
		Run:   b.refreshPack,
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "📊 Show pack cache status",
		Run:   b.packStatus,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "🗑️ Delete the pack cache",
		Run:   b.clearPack,
	}

	packsCmd.AddCommand(loadCmd, refreshCmd, statusCmd, clearCmd)
	rootCmd.AddCommand(packsCmd)
}

func (b *Box) packCache() (*packs.Cache, bool) {
	url := viper.GetString("packs.url")
	if url == "" {
		colours.Warning.Println("⚠️ No pack URL configured (set packs.url in crambox.yaml)")
		return nil, false
	}
	maxAge := time.Duration(viper.GetInt("packs.max_age_hours")) * time.Hour
	return packs.NewCache(url, config.CacheDir(), maxAge), true
}

func (b *Box) loadPack(cmd *cobra.Command, args []string) {
	cache, ok := b.packCache()
	if !ok {
		return
	}

	pack, err := cache.Get()
	if err != nil {
		colours.Error.Printf("❌ Failed to load pack: %v\n", err)
		return
	}

	added := 0
	for _, t := range pack.Topics {
		if err := b.catalog.Add(t); err != nil {
			logrus.WithError(err).WithField("id", t.ID).Warn("Skipping pack topic")
			continue
		}
		added++
	}
	colours.Success.Printf("✨ Loaded %d topics from pack %q\n", added, pack.Name)
}

func (b *Box) refreshPack(cmd *cobra.Command, args []string) {
	colours.Info.Println("🔄 Refreshing topic pack cache...")

	cache, ok := b.packCache()
	if !ok {
		return
	}

	if err := cache.Clear(); err != nil {
		colours.Error.Printf("❌ Failed to clear cache: %v\n", err)
		return
	}

	pack, err := cache.Get()
	if err != nil {
		colours.Error.Printf("❌ Failed to refresh cache: %v\n", err)
		return
	}

	colours.Success.Printf("✅ Cache refreshed! %d topics in pack %q\n", len(pack.Topics), pack.Name)
}

func (b *Box) clearPack(cmd *cobra.Command, args []string) {
	cache, ok := b.packCache()
	if !ok {
		return
	}

	if err := cache.Clear(); err != nil {
		colours.Error.Printf("❌ Failed to clear cache: %v\n", err)
		return
	}
	colours.Success.Println("🗑️ Pack cache cleared")
}

func (b *Box) packStatus(cmd *cobra.Command, args []string) {
	colours.Title.Println("📊 Pack Cache Status")

	cache, ok := b.packCache()
	if !ok {
		return
	}

	info, err := cache.Info()
	if err != nil {
		colours.Error.Printf("❌ Failed to get cache info: %v\n", err)
		return
	}

	if info["exists"].(bool) {
		colours.Success.Println("✅ Cache exists")
		colours.Info.Printf("📁 Location: %s\n", info["path"].(string))
		colours.Info.Printf("📏 Size: %d bytes\n", info["size"].(int64))
		colours.Info.Printf("🕐 Last modified: %s\n", info["last_modified"].(time.Time).Format("2006-01-02 15:04:05"))

		if info["is_fresh"].(bool) {
			colours.Success.Println("🔄 Cache is fresh")
		} else {
			colours.Warning.Println("⏰ Cache is stale")
		}

		colours.Info.Printf("⏳ Max age: %.1f hours\n", info["max_age_hours"].(float64))
	} else {
		colours.Warning.Println("❌ Cache does not exist")
		colours.Info.Println("💡 Run 'crambox packs refresh' to create it")
	}
}
