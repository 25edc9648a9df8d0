package main

import (
	"go.uber.org/zap"

	battlemodel "Strategus/internal/battle/infra/persistence/model"
	partymodel "Strategus/internal/party/infra/persistence/model"
	settlementmodel "Strategus/internal/settlement/infra/persistence/model"
	"Strategus/internal/shared/infrastructure/db"
	"Strategus/internal/shared/logs"
	"Strategus/internal/shared/serverconfig"
	worldmodel "Strategus/internal/world/infra/persistence/model"
)

// 建表/改表工具，按模型定义同步库结构。
func main() {
	serverconfig.Load()
	if err := logs.Init("migrate", serverconfig.Conf.Log); err != nil {
		panic(err)
	}

	gdb, err := db.Open(serverconfig.Conf.MySQL)
	if err != nil {
		logs.Fatal("open mysql failed", zap.Error(err))
	}

	err = gdb.AutoMigrate(
		&worldmodel.Terrain{},
		&settlementmodel.Settlement{},
		&partymodel.Party{},
		&partymodel.PartyItem{},
		&partymodel.PartyOrder{},
		&partymodel.PartyTransferOffer{},
		&partymodel.PartyTransferOfferItem{},
		&battlemodel.Battle{},
		&battlemodel.BattleFighter{},
		&battlemodel.BattleFighterApplication{},
	)
	if err != nil {
		logs.Fatal("auto migrate failed", zap.Error(err))
	}
	logs.Info("auto migrate done")
}
