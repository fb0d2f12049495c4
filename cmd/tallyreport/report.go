package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/vncsmyrnk/schoolvote/internal/core/domain"
)

func writeReport(w io.Writer, election *domain.Election, result *domain.TallyResult, now time.Time) error {
	label := "live"
	if result.IsFinal {
		label = "final"
	}
	fmt.Fprintf(w, "%s (%s, %s)\n", election.Title, election.Status, label)

	closing := "closes"
	if !now.Before(election.EndsAt) {
		closing = "closed"
	}
	fmt.Fprintf(w, "%s %s, ballots: %s", closing, humanize.RelTime(election.EndsAt, now, "ago", "from now"), humanize.Comma(result.TotalCast))
	if result.Turnout != nil {
		fmt.Fprintf(w, ", turnout: %.2f%% of %s", *result.Turnout, humanize.Comma(*result.EligibleVoters))
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tCANDIDATE\tVOTES\tSHARE\t")
	for _, c := range result.Candidates {
		marker := ""
		if c.IsWinner {
			marker = "winner"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f%%\t%s\n", humanize.Ordinal(c.Rank), c.Name, humanize.Comma(c.Votes), c.Percentage, marker)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
