package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jodijonatan/cashnote/internal/analytics"
)

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// RuleBased answers from keyword-matched Indonesian templates without
// calling any external service.
type RuleBased struct {
	now func() time.Time
}

// NewRuleBased creates a template-backed Advisor.
func NewRuleBased() *RuleBased {
	return &RuleBased{now: time.Now}
}

// Advise implements Advisor.
func (r *RuleBased) Advise(_ context.Context, snap analytics.Snapshot, question string) (string, error) {
	q := strings.ToLower(question)
	top := snap.TopExpenseCategory()
	if top == "" {
		top = "kategori pengeluaran terbesarmu"
	}

	switch {
	case strings.Contains(q, "saran") || strings.Contains(q, "advice"):
		rate := snap.SavingsRate()
		switch {
		case snap.Balance.IsNegative():
			return fmt.Sprintf("Kamu mengalami defisit %s bulan ini. Fokus untuk mengurangi pengeluaran di %s dan cari cara untuk menambah pendapatan.",
				FormatRupiah(snap.Balance.Abs()), top), nil
		case rate < 10:
			return fmt.Sprintf("Tingkat tabunganmu rendah (%.1f%%). Coba alokasikan 10-20%% pendapatan untuk tabungan darurat.", rate), nil
		default:
			return fmt.Sprintf("Keuanganmu cukup sehat dengan tingkat tabungan %.1f%%. Pertahankan kebiasaan baik ini dan pertimbangkan untuk menetapkan target keuangan spesifik.", rate), nil
		}

	case strings.Contains(q, "hemat") || strings.Contains(q, "save"):
		if len(snap.TopCategories) == 0 {
			return "Catat pengeluaranmu secara rutin agar terlihat pos mana yang bisa dihemat.", nil
		}
		return fmt.Sprintf("Mulai berhemat dari %s, pengeluaran terbesarmu sebesar %s dalam 30 hari terakhir. Tetapkan batas bulanan dan tinjau setiap minggu.",
			top, FormatRupiah(snap.TopCategories[0].Amount)), nil

	case strings.Contains(q, "kategori") || strings.Contains(q, "category"):
		if len(snap.TopCategories) == 0 {
			return "Belum ada pengeluaran per kategori dalam 30 hari terakhir.", nil
		}
		return fmt.Sprintf("Kategori pengeluaran terbesarmu adalah %s sebesar %s dalam 30 hari terakhir.",
			top, FormatRupiah(snap.TopCategories[0].Amount)), nil
	}

	now := r.now()
	return fmt.Sprintf("Berdasarkan data keuangan bulan %s %d: Total pendapatan %s, pengeluaran %s, dengan sisa %s. Ada yang bisa saya bantu lebih spesifik?",
		monthNames[now.Month()-1], now.Year(),
		FormatRupiah(snap.TotalIncome), FormatRupiah(snap.TotalExpense), FormatRupiah(snap.Balance)), nil
}

// Analyze implements Advisor.
func (r *RuleBased) Analyze(_ context.Context, breakdown analytics.Breakdown) (string, error) {
	if len(breakdown.Categories) == 0 {
		return fmt.Sprintf("Belum ada pengeluaran dalam %d hari terakhir.", breakdown.Days), nil
	}

	leaders := breakdown.Top(3)
	parts := make([]string, 0, len(leaders))
	for _, c := range leaders {
		parts = append(parts, fmt.Sprintf("%s (%s)", c.Name, FormatRupiah(c.Amount)))
	}
	share := analytics.Percent(leaders[0].Amount, breakdown.TotalExpenses).InexactFloat64()

	return fmt.Sprintf("Total pengeluaranmu dalam %d hari terakhir adalah %s. Kategori terbesar: %s. %s menyerap %.1f%% dari total pengeluaran, jadi tetapkan batas anggaran untuk kategori ini.",
		breakdown.Days, FormatRupiah(breakdown.TotalExpenses), strings.Join(parts, ", "), leaders[0].Name, share), nil
}
