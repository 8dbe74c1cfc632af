package advisor

import (
	"fmt"
	"strings"

	"github.com/jodijonatan/cashnote/internal/analytics"
)

func advicePrompt(snap analytics.Snapshot, question string) string {
	var b strings.Builder
	b.WriteString("User Financial Profile:\n")
	fmt.Fprintf(&b, "- Total Income: %s\n", FormatRupiah(snap.TotalIncome))
	fmt.Fprintf(&b, "- Total Expenses: %s\n", FormatRupiah(snap.TotalExpense))
	fmt.Fprintf(&b, "- Current Balance: %s\n", FormatRupiah(snap.Balance))
	fmt.Fprintf(&b, "- Average Expense: %s\n", FormatRupiah(snap.AverageExpense))

	if len(snap.TopCategories) > 0 {
		b.WriteString("\nTop Expense Categories (last 30 days):\n")
		for _, c := range snap.TopCategories {
			fmt.Fprintf(&b, "- %s: %s\n", c.Name, FormatRupiah(c.Amount))
		}
	}

	b.WriteString("\nRecent Transactions:\n")
	for _, tx := range snap.Recent {
		desc := tx.Description
		if desc == "" {
			desc = tx.Category
		}
		fmt.Fprintf(&b, "- %s (%s): %s [%s]\n", desc, tx.Type, FormatRupiah(tx.Amount), tx.Category)
	}

	fmt.Fprintf(&b, "\nUser Question: %s\n\n", strings.TrimSpace(question))
	b.WriteString("Please provide financial advice in Bahasa Indonesia. Be specific, practical, and consider the user's actual spending patterns.\n")
	b.WriteString("Keep the response concise but comprehensive (max 150 words).\n")
	return b.String()
}

func analysisPrompt(breakdown analytics.Breakdown) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this user's spending patterns over the last %d days:\n\n", breakdown.Days)
	fmt.Fprintf(&b, "Total Expenses: %s\n\n", FormatRupiah(breakdown.TotalExpenses))
	b.WriteString("Spending by Category:\n")
	for _, c := range breakdown.Categories {
		fmt.Fprintf(&b, "- %s: %s\n", c.Name, FormatRupiah(c.Amount))
	}
	b.WriteString("\nPlease provide insights about:\n")
	b.WriteString("1. Top spending categories\n")
	b.WriteString("2. Potential areas for cost reduction\n")
	b.WriteString("3. Unusual spending patterns\n")
	b.WriteString("4. Recommendations for better budgeting\n\n")
	b.WriteString("Response in Bahasa Indonesia, max 120 words.\n")
	return b.String()
}
