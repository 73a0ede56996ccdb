package service

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"heritage/config"
	"heritage/infras/otel"
	bModel "heritage/internal/domains/booking/model"
	invService "heritage/internal/domains/inventory/service"
	"heritage/internal/domains/refdata/model"
	"heritage/shared"
	"heritage/shared/cache"
	"heritage/shared/constant"
)

const cacheLists = "refdata:lists"

// Refdata serves the dropdown reference lists. Agents and companies live in
// an operator-maintained workbook next to the data files; a missing or
// unreadable workbook degrades to the built-in defaults with a warning.
type Refdata interface {
	Lists(ctx context.Context) model.Lists
}

type serviceImpl struct {
	cfg       *config.Config
	inventory invService.Inventory
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(cfg *config.Config, inventory invService.Inventory, cache cache.RedisCache, otel otel.Otel) Refdata {
	return &serviceImpl{
		cfg:       cfg,
		inventory: inventory,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Lists(ctx context.Context) (res model.Lists) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Lists")
	defer scope.End()

	err := s.cache.Get(ctx, cacheLists, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheLists).Msg("cache hit for refdata")

		return res
	}

	agents, companies, warnings := s.loadWorkbook()

	res.Agents = agents
	res.Companies = companies
	res.Warnings = warnings
	res.Plans = []string{bModel.PlanAP, bModel.PlanCP, bModel.PlanMAP, bModel.PlanEP}
	res.Statuses = []string{
		bModel.StatusConfirmed,
		bModel.StatusHold,
		bModel.StatusWaitlist,
		bModel.StatusTentative,
		bModel.StatusCanceled,
	}

	res.RoomTypes = []string{}
	for _, category := range s.inventory.Categories(ctx) {
		res.RoomTypes = append(res.RoomTypes, category.Name)
	}

	if len(warnings) == 0 {
		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheLists, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save refdata to cache")
			}
		}()
	}

	return res
}

// loadWorkbook reads the agent and company sheets. The configured default
// agent always exists and always sorts first.
func (s *serviceImpl) loadWorkbook() (agents, companies, warnings []string) {
	warnings = []string{}
	path := filepath.Join(s.cfg.Storage.DataDir, s.cfg.Storage.DropdownFile)

	if _, err := os.Stat(path); err != nil {
		log.Warn().Str("file", path).Msg("reference workbook missing, serving defaults")

		return s.withDefaultAgent(nil), []string{}, append(warnings, "reference workbook is missing, lists are defaults only")
	}

	workbook, err := excelize.OpenFile(path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("failed to open reference workbook")

		return s.withDefaultAgent(nil), []string{}, append(warnings, "reference workbook could not be read, lists are defaults only")
	}

	defer func() {
		if err := workbook.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close reference workbook")
		}
	}()

	agents = s.withDefaultAgent(sheetColumn(workbook, model.SheetAgents))
	companies = sheetColumn(workbook, model.SheetCompanies)

	return agents, companies, warnings
}

// withDefaultAgent dedupes and sorts the agent list, then pins the default
// agent to the front.
func (s *serviceImpl) withDefaultAgent(values []string) []string {
	defaultAgent := s.cfg.Storage.DefaultAgent
	agents := []string{defaultAgent}

	seen := map[string]bool{strings.ToUpper(defaultAgent): true}

	sorted := append([]string{}, values...)
	sort.Slice(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i]) < strings.ToLower(sorted[j])
	})

	for _, value := range sorted {
		if seen[strings.ToUpper(value)] {
			continue
		}

		seen[strings.ToUpper(value)] = true
		agents = append(agents, value)
	}

	return agents
}

// sheetColumn reads the first column of a sheet, skipping the header row
// and blanks. A missing sheet is an empty list.
func sheetColumn(workbook *excelize.File, sheet string) []string {
	rows, err := workbook.GetRows(sheet)
	if err != nil {
		log.Warn().Err(err).Str("sheet", sheet).Msg("reference sheet missing")

		return []string{}
	}

	values := []string{}

	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}

		value := strings.TrimSpace(row[0])
		if value == constant.Empty {
			continue
		}

		values = append(values, value)
	}

	sort.Slice(values, func(i, j int) bool {
		return strings.ToLower(values[i]) < strings.ToLower(values[j])
	})

	return shared.Dedupe(values)
}
