package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/viper"
	"github.com/yukikurage/workforce-api/internal/models"
	"github.com/yukikurage/workforce-api/internal/services"
	"github.com/yukikurage/workforce-api/internal/workforce"
)

func printJSONOrTable(w io.Writer, v any, render func(io.Writer)) error {
	if viper.GetBool("json") {
		return printJSON(w, v)
	}
	render(w)
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type seedResult struct {
	OrganizationID uint64            `json:"organization_id"`
	Users          map[string]uint64 `json:"users"`
	Projects       map[string]uint64 `json:"projects"`
}

func seedSummary(org *models.Organization) seedResult {
	res := seedResult{
		OrganizationID: org.ID,
		Users:          make(map[string]uint64, len(org.Users)),
		Projects:       make(map[string]uint64, len(org.Projects)),
	}
	for _, u := range org.Users {
		res.Users[u.Username] = u.ID
	}
	for _, p := range org.Projects {
		res.Projects[p.Name] = p.ID
	}
	return res
}

func renderSeed(w io.Writer, org *models.Organization) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetTitle(fmt.Sprintf("%s (organization %d)", org.Name, org.ID))
	tw.AppendHeader(table.Row{"Kind", "ID", "Name", "Level"})
	for _, u := range org.Users {
		tw.AppendRow(table.Row{"user", u.ID, u.Username, org.HierarchyLevels[u.HierarchyLevel]})
	}
	for _, p := range org.Projects {
		tw.AppendRow(table.Row{"project", p.ID, p.Name, ""})
	}
	tw.Render()
}

func renderLoad(w io.Writer, load workforce.WeeklyLoad, names map[uint64]string) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetTitle("Week of " + load.WeekStart.Format("2006-01-02"))

	header := table.Row{"User"}
	for _, d := range load.Days {
		header = append(header, d.Format("Mon 02"))
	}
	header = append(header, "Week", "Cost")
	tw.AppendHeader(header)

	for _, u := range load.Users {
		row := table.Row{names[u.UserID]}
		for day, hours := range u.DayTotals {
			cell := fmt.Sprintf("%.1f", hours)
			if u.IsOverAllocated(day) {
				cell = text.FgRed.Sprint(cell + " !")
			}
			row = append(row, cell)
		}
		cost := "-"
		if u.Cost != nil {
			cost = fmt.Sprintf("%.2f", *u.Cost)
		}
		row = append(row, fmt.Sprintf("%.1f", u.WeekTotal), cost)
		tw.AppendRow(row)
	}
	tw.Render()
}

func renderRisk(w io.Writer, report services.RiskReport) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetTitle(fmt.Sprintf("User %d: %s (%s)", report.UserID, report.Assessment.Level, report.Assessment.Reason))
	tw.AppendHeader(table.Row{"Time", "Type", "Mood", "Comment"})
	for _, e := range report.Entries {
		comment := ""
		if e.Comment != nil {
			comment = *e.Comment
		}
		tw.AppendRow(table.Row{e.Timestamp.Format("2006-01-02 15:04"), e.Type, e.MoodValue, comment})
	}
	tw.Render()
}

func renderTeamRisk(w io.Writer, rows []services.TeamRiskRow) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"ID", "User", "Risk", "Entries", "Average", "Reason"})
	for _, r := range rows {
		level := string(r.Assessment.Level)
		if r.Assessment.Level == workforce.RiskHigh {
			level = text.FgRed.Sprint(level)
		}
		tw.AppendRow(table.Row{r.UserID, r.Username, level, r.Assessment.SampleSize,
			fmt.Sprintf("%.2f", r.Assessment.AverageMood), r.Assessment.Reason})
	}
	tw.Render()
}
