package box

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"crambox/internal/cli/scheme/colours"
	"crambox/internal/domain/topic"
)

// QuizSession records one run through a topic's question set.
type QuizSession struct {
	ID       string
	TopicID  string
	Started  time.Time
	Asked    int
	Correct  int
	Duration time.Duration
}

// Score returns the fraction of self-graded correct answers.
func (s QuizSession) Score() float64 {
	if s.Asked == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Asked)
}

// QuizTopic runs a flashcard-style session over a topic's question pairs.
// The learner reveals each answer and self-grades; this is a study aid, not
// an exam, so honesty is on them.
func (b *Box) QuizTopic(cmd *cobra.Command, args []string) {
	var t topic.Topic
	var ok bool

	if len(args) > 0 {
		t, ok = b.catalog.Get(args[0])
		if !ok {
			colours.Error.Printf("❌ Topic with ID '%s' not found!\n", args[0])
			b.suggestClose(args[0])
			return
		}
	} else {
		t, ok = b.catalog.Random()
		if !ok {
			colours.Error.Println("❌ No topics available!")
			return
		}
	}

	if len(t.Questions) == 0 {
		colours.Warning.Printf("🔍 %s has no quiz questions.\n", t.Title)
		return
	}

	session := QuizSession{
		ID:      uuid.NewString(),
		TopicID: t.ID,
		Started: time.Now(),
	}

	fmt.Println()
	colours.Title.Printf("🧠 Quiz: %s 🧠\n", t.Title)
	colours.Info.Printf("   %d questions | session %s\n", len(t.Questions), session.ID[:8])
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	for i, q := range t.Questions {
		select {
		case <-b.ctx.Done():
			return
		default:
		}

		colours.Prompt.Printf("Q%d: %s\n", i+1, q.Question)
		fmt.Print("    (press Enter to reveal the answer, 'q' to stop) ")

		input, _ := reader.ReadString('\n')
		if strings.TrimSpace(strings.ToLower(input)) == "q" {
			break
		}

		colours.Info.Printf("A:  %s\n", q.Answer)
		fmt.Print("    Did you have it? [y/n] ")

		input, _ = reader.ReadString('\n')
		session.Asked++
		if strings.TrimSpace(strings.ToLower(input)) == "y" {
			session.Correct++
			colours.Success.Println("    ✅ Nice!")
		} else {
			colours.Warning.Println("    📖 One to revisit.")
		}
		fmt.Println()
	}

	session.Duration = time.Since(session.Started)
	b.printQuizResult(t, session)
}

func (b *Box) printQuizResult(t topic.Topic, session QuizSession) {
	if session.Asked == 0 {
		colours.Warning.Println("👋 Quiz abandoned before any questions.")
		return
	}

	fmt.Println()
	colours.Title.Println("📋 Quiz Result 📋")
	fmt.Printf("  Topic: %s\n", t.Title)
	fmt.Printf("  Score: %d/%d (%.0f%%) in %s\n",
		session.Correct, session.Asked, session.Score()*100,
		session.Duration.Round(time.Second))

	switch {
	case session.Score() == 1:
		colours.Success.Println("  🏆 Perfect! Move on to the next topic.")
	case session.Score() >= 0.5:
		colours.Success.Println("  👍 Solid. Re-read the key points and retry.")
	default:
		colours.Warning.Printf("  📚 Worth a re-read: crambox show %s\n", t.ID)
	}

	logrus.WithFields(logrus.Fields{
		"session": session.ID,
		"topic":   session.TopicID,
		"asked":   session.Asked,
		"correct": session.Correct,
	}).Debug("Quiz session finished")
}
