package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/IgorMikael1000/Motorista-Pro/internal/app/api/server"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/account"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/backup"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/billing"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/drivelog"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/finance"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/gamification"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/maintenance"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/notify"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/scheduler"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/settings"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/statistics"
	"github.com/IgorMikael1000/Motorista-Pro/internal/app/service/support"
	"github.com/IgorMikael1000/Motorista-Pro/internal/platform/db"
	"github.com/IgorMikael1000/Motorista-Pro/internal/platform/googleauth"
	"github.com/IgorMikael1000/Motorista-Pro/internal/platform/mercadopago"
	"github.com/IgorMikael1000/Motorista-Pro/internal/platform/stripepay"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/config"
	"github.com/IgorMikael1000/Motorista-Pro/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,

	googleauth.Module,
	stripepay.Module,
	mercadopago.Module,

	settings.Module,
	notify.Module,
	account.Module,
	drivelog.Module,
	finance.Module,
	maintenance.Module,
	billing.Module,
	gamification.Module,
	support.Module,
	statistics.Module,
	backup.Module,
	scheduler.Module,

	server.Module,
)
