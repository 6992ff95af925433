package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/refaktor/fwrapgen"
)

type timing struct {
	Task string
	Time time.Duration
}

func printStats(w io.Writer, res *fwrapgen.Result, timings []timing) {
	fmt.Fprintf(w, "==Binding stats==\n")
	{
		var total fwrapgen.Stats
		tbl := tablewriter.NewWriter(w)
		tbl.SetHeader([]string{"Category", "Written/Total", "Skipped", "Failed"})
		for _, cat := range slices.Sorted(maps.Keys(res.Stats)) {
			st := res.Stats[cat]
			tbl.Append([]string{
				cat,
				fmt.Sprintf("%v/%v", st.Written, st.Total),
				strconv.Itoa(st.Skipped),
				strconv.Itoa(st.Failed),
			})
			total.Total += st.Total
			total.Written += st.Written
			total.Skipped += st.Skipped
			total.Failed += st.Failed
		}
		tbl.Append([]string{
			"==TOTAL==",
			fmt.Sprintf("%v/%v", total.Written, total.Total),
			strconv.Itoa(total.Skipped),
			strconv.Itoa(total.Failed),
		})
		tbl.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})
		tbl.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
		tbl.SetCenterSeparator("|")
		tbl.Render()
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "==Timing stats==\n")
	{
		var timeTotal time.Duration
		for _, t := range timings {
			timeTotal += t.Time
		}
		timePercent := func(t time.Duration) string {
			if timeTotal == 0 {
				return "0.00"
			}
			return strconv.FormatFloat(
				float64(t)/float64(timeTotal)*100,
				'f', 2, 64,
			)
		}

		tbl := tablewriter.NewWriter(w)
		tbl.SetHeader([]string{"Task", "Time", "Time %"})
		for _, t := range timings {
			tbl.Append([]string{t.Task, t.Time.String(), timePercent(t.Time)})
		}
		tbl.Append([]string{"==TOTAL==", timeTotal.String(), "100"})
		tbl.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_RIGHT})
		tbl.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
		tbl.SetCenterSeparator("|")
		tbl.Render()
	}
}
