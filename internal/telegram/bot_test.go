package telegram

import (
	"strings"
	"testing"

	"github.com/Harie1904/agente-noticias-alexandre/internal/metrics"
)

func TestFormatUsageReport(t *testing.T) {
	usage := []metrics.DailyUsage{
		{Date: "2025-03-02", TotalPrompt: 1200, TotalCompletion: 300, TotalExecution: 9},
		{Date: "2025-03-01", TotalPrompt: 800, TotalCompletion: 200, TotalExecution: 4},
	}
	health := metrics.SysHealth{
		AllocMB:          12,
		SysMB:            48,
		Goroutines:       7,
		DatabaseDiskSize: "1.2 MB",
	}

	report := formatUsageReport(usage, health)

	if !strings.Contains(report, "📊 *Relatório de Uso e Saúde*") {
		t.Error("Missing report header")
	}
	if !strings.Contains(report, "• *2025-03-02*: 1500 tokens (9 execuções)") {
		t.Error("Missing daily usage line")
	}
	if !strings.Contains(report, "• RAM: 12MB (Alloc) / 48MB (Sys)") {
		t.Error("Missing RAM line")
	}
	if !strings.Contains(report, "• Disco: 1.2 MB") {
		t.Error("Missing disk line")
	}
}

func TestFormatUsageReportWithoutData(t *testing.T) {
	report := formatUsageReport(nil, metrics.SysHealth{})

	if !strings.Contains(report, "_Sem dados ainda_") {
		t.Error("Missing empty-data placeholder")
	}
}

func TestIsAllowedUser(t *testing.T) {
	allowed := []int64{123, 456}

	if !isAllowedUser(allowed, 456) {
		t.Error("Expected listed user to be allowed")
	}
	if isAllowedUser(allowed, 789) {
		t.Error("Expected unlisted user to be denied")
	}
	if isAllowedUser(nil, 123) {
		t.Error("Expected empty allow list to deny everyone")
	}
}
