package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/sky-flux/sm2"
	"github.com/sky-flux/sm2/simulator"
)

const dateFormat = "2006-01-02 15:04"

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid item id %q", s)
	}
	return id, nil
}

func (a *app) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add TERM [DEFINITION]",
		Short: "Add a new item, due immediately",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, path, err := a.loadDeck()
			if err != nil {
				return err
			}
			e := Entry{ReviewItem: sm2.NewItem(d.nextID(), a.now()), Term: args[0]}
			if len(args) > 1 {
				e.Definition = args[1]
			}
			d.Entries = append(d.Entries, e)
			if err := a.saveDeck(d, path); err != nil {
				return err
			}
			a.logger.Info("item added", "id", e.ID, "term", e.Term)
			fmt.Fprintf(a.out, "added %d: %s\n", e.ID, e.Term)
			return nil
		},
	}
}

func (a *app) dueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "due",
		Short: "List items due for review, weakest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, _, err := a.loadDeck()
			if err != nil {
				return err
			}
			idx, err := sm2.SelectDueItems(d.items(), a.now(), a.v.GetInt("limit"))
			if err != nil {
				return err
			}
			if len(idx) == 0 {
				fmt.Fprintln(a.out, "nothing due")
				return nil
			}
			for _, i := range idx {
				e := d.Entries[i]
				fmt.Fprintf(a.out, "%-4d %-24s mastery %3d  due %s\n",
					e.ID, e.Term, e.MasteryLevel, e.NextReviewAt.Format(dateFormat))
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "maximum number of items to list")
	return cmd
}

func (a *app) reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review ID QUALITY",
		Short: "Record a review answered with QUALITY (0-5 or name)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			q, err := sm2.ParseQuality(args[1])
			if err != nil {
				return err
			}
			d, path, err := a.loadDeck()
			if err != nil {
				return err
			}
			i, ok := d.find(id)
			if !ok {
				return fmt.Errorf("item %d not found", id)
			}

			now := a.now()
			item, log, err := a.scheduler.Review(d.Entries[i].ReviewItem, q, now)
			if err != nil {
				return err
			}
			if dur := a.v.GetDuration("duration"); dur > 0 {
				log.Duration = &dur
			}
			d.Entries[i].ReviewItem = item
			d.Logs = append(d.Logs, log)
			a.recorder.ObserveReview(q, item.State())

			if err := a.saveDeck(d, path); err != nil {
				return err
			}
			a.logger.Info("review recorded", "id", id, "quality", q, "interval", item.IntervalDays)
			fmt.Fprintf(a.out, "%s: %s, interval %d days, mastery %d, next %s\n",
				d.Entries[i].Term, q, item.IntervalDays, item.MasteryLevel, item.NextReviewAt.Format(dateFormat))
			return nil
		},
	}
	cmd.Flags().Duration("duration", 0, "time spent answering")
	return cmd
}

func (a *app) previewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview ID",
		Short: "Show the outcome of each possible answer without recording it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			d, _, err := a.loadDeck()
			if err != nil {
				return err
			}
			i, ok := d.find(id)
			if !ok {
				return fmt.Errorf("item %d not found", id)
			}
			outcomes := a.scheduler.Preview(d.Entries[i].ReviewItem, a.now())
			for _, q := range sm2.Qualities {
				o := outcomes[q]
				fmt.Fprintf(a.out, "%d %-17s interval %5d  ease %.2f  mastery %3d\n",
					int(q), q, o.IntervalDays, o.EaseFactor, o.MasteryLevel)
			}
			return nil
		},
	}
}

func (a *app) rescheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reschedule ID",
		Short: "Rebuild an item's schedule by replaying its review logs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			d, path, err := a.loadDeck()
			if err != nil {
				return err
			}
			i, ok := d.find(id)
			if !ok {
				return fmt.Errorf("item %d not found", id)
			}
			logs := d.logsFor(id)
			if len(logs) == 0 {
				return fmt.Errorf("item %d has no review logs", id)
			}

			fresh := sm2.NewItem(id, logs[0].ReviewedAt)
			item, err := a.scheduler.Reschedule(fresh, logs)
			if err != nil {
				return err
			}
			d.Entries[i].ReviewItem = item
			if err := a.saveDeck(d, path); err != nil {
				return err
			}
			a.logger.Info("item rescheduled", "id", id, "logs", len(logs))
			fmt.Fprintf(a.out, "%s: replayed %d reviews, interval %d days, next %s\n",
				d.Entries[i].Term, len(logs), item.IntervalDays, item.NextReviewAt.Format(dateFormat))
			return nil
		},
	}
}

func (a *app) statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, _, err := a.loadDeck()
			if err != nil {
				return err
			}
			st := sm2.Summarize(d.items(), a.now(), a.v.GetDuration("soon"))
			fmt.Fprintf(a.out, "total:      %d\n", st.Total)
			fmt.Fprintf(a.out, "unreviewed: %d\n", st.Unreviewed)
			fmt.Fprintf(a.out, "young:      %d\n", st.Young)
			fmt.Fprintf(a.out, "mature:     %d\n", st.Mature)
			fmt.Fprintf(a.out, "mastered:   %d\n", st.Mastered)
			fmt.Fprintf(a.out, "due:        %d\n", st.Due)
			fmt.Fprintf(a.out, "due soon:   %d\n", st.DueSoon)
			fmt.Fprintf(a.out, "struggling: %d\n", st.Struggling)
			fmt.Fprintf(a.out, "avg ease:   %.2f\n", st.AverageEase)
			fmt.Fprintf(a.out, "avg ivl:    %.1f days\n", st.AverageInterval)
			if st.NextDue != nil {
				fmt.Fprintf(a.out, "next due:   %s\n", st.NextDue.Format(dateFormat))
			}
			return nil
		},
	}
	cmd.Flags().Duration("soon", 24*time.Hour, "look-ahead window for items due soon")
	return cmd
}

func (a *app) forecastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Count reviews falling due on each upcoming day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, _, err := a.loadDeck()
			if err != nil {
				return err
			}
			now := a.now()
			counts, err := sm2.Forecast(d.items(), now, a.v.GetInt("days"))
			if err != nil {
				return err
			}
			day := sm2.StartOfDay(now)
			for i, n := range counts {
				fmt.Fprintf(a.out, "%s %d\n", sm2.AddDays(day, i).Format("2006-01-02"), n)
			}
			return nil
		},
	}
	cmd.Flags().Int("days", 7, "number of days to forecast")
	return cmd
}

func (a *app) simulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate the review workload of a deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := simulator.Config{
				Days:      a.v.GetInt("days"),
				NewPerDay: a.v.GetInt("new-per-day"),
				BatchSize: a.v.GetInt("batch"),
				Seed:      a.v.GetInt64("seed"),
			}
			if a.v.GetBool("from-logs") {
				d, _, err := a.loadDeck()
				if err != nil {
					return err
				}
				dist, err := simulator.EstimateDistribution(d.Logs)
				if err != nil {
					return err
				}
				cfg.Distribution = &dist
			}

			if runs := a.v.GetInt("runs"); runs > 1 {
				return a.sweep(cmd.Context(), cfg, runs)
			}

			sim, err := simulator.New(cfg, a.scheduler, a.recorder)
			if err != nil {
				return err
			}
			res, err := sim.Run(cmd.Context(), a.v.GetInt("deck-size"), a.now())
			if err != nil {
				return err
			}

			for _, day := range res.Days {
				fmt.Fprintf(a.out, "%s new %3d  reviewed %4d  lapses %3d  backlog %4d  mastered %4d  time %s\n",
					day.Date.Format("2006-01-02"), day.New, day.Reviewed, day.Lapses, day.Backlog, day.Mastered, day.Time)
			}
			fmt.Fprintf(a.out, "total: reviews %d, lapses %d, mastered %d, time %s\n",
				res.Reviews, res.Lapses, res.Mastered, res.Time)
			return nil
		},
	}
	f := cmd.Flags()
	f.Int("days", 30, "days to simulate")
	f.Int("new-per-day", 10, "new items introduced per day")
	f.Int("batch", 100, "maximum reviews per day")
	f.Int64("seed", 42, "random seed")
	f.Int("deck-size", 200, "items in the simulated deck")
	f.Bool("from-logs", false, "estimate answer probabilities from the deck's review logs")
	f.Int("runs", 1, "number of seeds to simulate, starting at --seed")
	f.Int("workers", 0, "concurrent runs (default GOMAXPROCS)")
	return cmd
}

// sweep simulates runs consecutive seeds concurrently and prints the totals
// of each run and their mean.
func (a *app) sweep(ctx context.Context, cfg simulator.Config, runs int) error {
	seeds := make([]int64, runs)
	for i := range seeds {
		seeds[i] = cfg.Seed + int64(i)
	}
	results, err := simulator.Sweep(ctx, cfg, a.scheduler, a.recorder, seeds,
		a.v.GetInt("workers"), a.v.GetInt("deck-size"), a.now())
	if err != nil {
		return err
	}
	a.logger.Info("sweep finished", "runs", runs)

	for i, res := range results {
		fmt.Fprintf(a.out, "seed %d: reviews %d, lapses %d, mastered %d, time %s\n",
			seeds[i], res.Reviews, res.Lapses, res.Mastered, res.Time)
	}
	m := simulator.Mean(results)
	fmt.Fprintf(a.out, "mean: reviews %d, lapses %d, mastered %d, time %s\n",
		m.Reviews, m.Lapses, m.Mastered, m.Time)
	return nil
}
