package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	battleapp "Strategus/internal/battle/app"
	battlemysql "Strategus/internal/battle/infra/persistence/mysql"
	battlehandler "Strategus/internal/battle/interfaces/handler"
	partyapp "Strategus/internal/party/app"
	partymysql "Strategus/internal/party/infra/persistence/mysql"
	partyhandler "Strategus/internal/party/interfaces/handler"
	settlementmysql "Strategus/internal/settlement/infra/persistence/mysql"
	settlementhandler "Strategus/internal/settlement/interfaces/handler"
	"Strategus/internal/shared/infrastructure/db"
	"Strategus/internal/shared/logs"
	"Strategus/internal/shared/serverconfig"
	transporthttp "Strategus/internal/shared/transport/http"
	"Strategus/internal/shared/transport/http/middleware"
	worldmysql "Strategus/internal/world/infra/persistence/mysql"
	worldhandler "Strategus/internal/world/interfaces/handler"
	"Strategus/modules/kit/logx"
)

func main() {
	serverconfig.Load()
	if err := logs.Init("strategus", serverconfig.Conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("conf", serverconfig.Conf))

	gdb, err := db.Open(serverconfig.Conf.MySQL)
	if err != nil {
		logs.Fatal("open mysql failed", zap.Error(err))
	}

	logger := logx.NewZapLogger(logs.Logger())
	camp := serverconfig.Conf.Campaign

	terrainRepo := worldmysql.NewTerrainRepo(gdb)
	settlementRepo := settlementmysql.NewSettlementRepo(gdb)
	battleRepo := battlemysql.NewBattleRepo(gdb)
	partyRepo := partymysql.NewPartyRepo(gdb)
	offerRepo := partymysql.NewTransferOfferRepo(gdb)

	scheduler := battleapp.NewScheduler(time.Now, rand.Intn, camp.BattleScheduleMinLeadHours)
	phaseService := battleapp.NewPhaseService(battleRepo, scheduler, logger,
		time.Now, camp.BattleSlots, hours(camp.BattleInitiationHours), hours(camp.BattleHiringHours))
	battleService := battleapp.NewBattleService(battleRepo)

	orderService := partyapp.NewOrderService(partyRepo, offerRepo, battleRepo, settlementRepo,
		camp.ViewDistance, camp.MinPartyTroops)
	transferService := partyapp.NewTransferService(partyRepo, offerRepo, logger)
	movementService := partyapp.NewMovementService(partyRepo, offerRepo, battleRepo, settlementRepo,
		terrainRepo, logger, time.Now, camp.ViewDistance, camp.InteractionDistance)
	troopsService := partyapp.NewTroopsService(partyRepo, camp.TroopRecruitmentPerHour, camp.MaxPartyTroops)
	projectionService := partyapp.NewProjectionService(partyRepo, offerRepo, battleRepo, settlementRepo,
		terrainRepo, camp.ViewDistance)

	addr := fmt.Sprintf("%s:%d", serverconfig.Conf.HTTPServer.Host, serverconfig.Conf.HTTPServer.Port)
	server := transporthttp.NewHttpServer(addr, nil, logger)

	group := server.Group().Group("", middleware.Auth())
	admin := server.Group().Group("/admin", middleware.Auth())

	worldhandler.NewTerrain(terrainRepo, logger).RegisterRoutes(group, admin)
	settlementhandler.NewSettlement(settlementRepo, logger).RegisterRoutes(group, admin)
	battlehandler.NewBattle(battleService, phaseService, logger).RegisterRoutes(group, admin)
	partyhandler.NewParty(projectionService, orderService, transferService,
		movementService, troopsService, logger).RegisterRoutes(group, admin)

	go func() {
		logs.Info("http server start", zap.String("addr", addr))
		if err := server.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			logs.Fatal("http server failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logs.Info("收到退出信号，准备优雅退出")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logs.Error("http server shutdown", zap.Error(err))
	}
}

func hours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}
