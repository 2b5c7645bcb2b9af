/*
*
  - 数据库迁移工具
  - @author: sun977
  - @date: 2025.09.21
  - @description: 数据库模型迁移和初始数据填充工具
  - @usage: go run main.go -env=test -seed=true -drop=true
    -drop
    是否先删除表（危险操作）
    -env string
    环境标识 (test, dev, prod) (default "test")
    -seed
    是否填充初始数据 (default true)

示例:
main.exe -env=test -seed=true    # 测试环境迁移并填充数据
main.exe -env=prod -seed=false   # 生产环境仅迁移表结构
*/
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"assetmaster/internal/config"
	"assetmaster/internal/model"
	"assetmaster/internal/model/asset"
	authPkg "assetmaster/internal/pkg/auth"
	"assetmaster/internal/pkg/database"
	"assetmaster/internal/pkg/logger"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MigrateOptions 迁移选项配置
type MigrateOptions struct {
	Environment string // 环境标识: test, dev, prod
	SeedData    bool   // 是否填充初始数据
	DropFirst   bool   // 是否先删除表（危险操作）
}

func main() {
	// 解析命令行参数
	opts := parseFlags()

	// 加载配置
	cfg, err := config.LoadConfig("", opts.Environment)
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	// 初始化日志管理器
	logManager, err := logger.InitLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}

	logManager.GetLogger().WithFields(logrus.Fields{
		"path":        "cmd/migrate/main.go",
		"operation":   "database_migration",
		"func_name":   "main",
		"environment": opts.Environment,
		"seed_data":   opts.SeedData,
		"drop_first":  opts.DropFirst,
	}).Info("开始数据库迁移")

	// 初始化数据库连接
	db, err := database.NewMySQLConnection(&cfg.Database.MySQL)
	if err != nil {
		logManager.GetLogger().WithFields(logrus.Fields{
			"path":      "cmd/migrate/main.go",
			"operation": "database_connection",
			"func_name": "main",
			"error":     err.Error(),
		}).Fatal("数据库连接失败")
	}

	// 执行迁移
	if err := performMigration(db, opts, logManager); err != nil {
		logManager.GetLogger().WithFields(logrus.Fields{
			"path":      "cmd/migrate/main.go",
			"operation": "database_migration",
			"func_name": "main",
			"error":     err.Error(),
		}).Fatal("数据库迁移失败")
	}

	logManager.GetLogger().WithFields(logrus.Fields{
		"path":      "cmd/migrate/main.go",
		"operation": "database_migration",
		"func_name": "main",
	}).Info("数据库迁移完成")
}

// parseFlags 解析命令行参数
func parseFlags() *MigrateOptions {
	opts := &MigrateOptions{}

	flag.StringVar(&opts.Environment, "env", "test", "环境标识 (test, dev, prod)")
	flag.BoolVar(&opts.SeedData, "seed", true, "是否填充初始数据")
	flag.BoolVar(&opts.DropFirst, "drop", false, "是否先删除表（危险操作）")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "AssetMaster 数据库迁移工具\n\n")
		fmt.Fprintf(os.Stderr, "用法: %s [选项]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "选项:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n示例:\n")
		fmt.Fprintf(os.Stderr, "  %s -env=test -seed=true    # 测试环境迁移并填充数据\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -env=prod -seed=false   # 生产环境仅迁移表结构\n", os.Args[0])
	}

	flag.Parse()
	return opts
}

// performMigration 执行数据库迁移
func performMigration(db *gorm.DB, opts *MigrateOptions, logManager *logger.LoggerManager) error {
	// 1. 删除表（如果指定）
	if opts.DropFirst {
		if err := dropTables(db, logManager); err != nil {
			return fmt.Errorf("删除表失败: %w", err)
		}
	}

	// 2. 执行模型迁移
	if err := migrateModels(db, logManager); err != nil {
		return fmt.Errorf("模型迁移失败: %w", err)
	}

	// 3. 填充初始数据（如果指定）
	if opts.SeedData {
		if err := seedData(db, logManager); err != nil {
			return fmt.Errorf("数据填充失败: %w", err)
		}
	}

	return nil
}

// dropTables 删除所有表
// 危险操作，仅用于开发环境重置
func dropTables(db *gorm.DB, logManager *logger.LoggerManager) error {
	logManager.GetLogger().WithFields(logrus.Fields{
		"path":      "cmd/migrate/main.go",
		"operation": "drop_tables",
		"func_name": "dropTables",
	}).Warn("开始删除数据库表")

	// 定义所有模型（按依赖关系逆序）
	models := []interface{}{
		// 从表先删除
		&asset.AssetChangeTrace{},
		&asset.AssetWarranty{},
		&asset.AssetLocation{},

		// 主表后删除
		&asset.Asset{},
		&asset.AssetCategory{},
		&model.User{},
	}

	for _, m := range models {
		if err := db.Migrator().DropTable(m); err != nil {
			logManager.GetLogger().WithFields(logrus.Fields{
				"path":      "cmd/migrate/main.go",
				"operation": "drop_table",
				"func_name": "dropTables",
				"model":     fmt.Sprintf("%T", m),
				"error":     err.Error(),
			}).Error("删除表失败")
		}
	}

	return nil
}

// migrateModels 执行模型迁移
func migrateModels(db *gorm.DB, loggerMgr *logger.LoggerManager) error {
	loggerMgr.GetLogger().Info("开始执行模型迁移...")

	// 定义所有需要迁移的模型
	models := []interface{}{
		// 系统模块
		&model.User{},

		// 资产模块
		&asset.AssetCategory{},
		&asset.Asset{},
		&asset.AssetLocation{},
		&asset.AssetWarranty{},
		&asset.AssetChangeTrace{},
	}

	// 执行自动迁移
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("迁移模型 %T 失败: %w", m, err)
		}
		loggerMgr.GetLogger().WithField("model", fmt.Sprintf("%T", m)).Info("模型迁移成功")
	}

	loggerMgr.GetLogger().Info("所有模型迁移完成")
	return nil
}

// seedData 填充初始数据
// 幂等操作：已存在的数据不会重复写入
func seedData(db *gorm.DB, loggerMgr *logger.LoggerManager) error {
	if err := seedAdminUser(db, loggerMgr); err != nil {
		return err
	}
	return seedCategories(db, loggerMgr)
}

// seedAdminUser 创建默认管理员账号
func seedAdminUser(db *gorm.DB, loggerMgr *logger.LoggerManager) error {
	var count int64
	if err := db.Model(&model.User{}).Where("username = ?", "admin").Count(&count).Error; err != nil {
		return fmt.Errorf("查询管理员账号失败: %w", err)
	}
	if count > 0 {
		loggerMgr.GetLogger().Info("管理员账号已存在，跳过创建")
		return nil
	}

	passwordManager := authPkg.NewPasswordManager(nil)
	hashed, err := passwordManager.HashPassword("admin@123")
	if err != nil {
		return fmt.Errorf("生成管理员密码失败: %w", err)
	}

	admin := &model.User{
		Username: "admin",
		Email:    "admin@example.com",
		Password: hashed,
		Nickname: "管理员",
		Status:   model.UserStatusEnabled,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("创建管理员账号失败: %w", err)
	}

	loggerMgr.GetLogger().WithField("username", admin.Username).Info("管理员账号创建成功")
	return nil
}

// seedCategories 创建基础资产分类树
func seedCategories(db *gorm.DB, loggerMgr *logger.LoggerManager) error {
	var count int64
	if err := db.Model(&asset.AssetCategory{}).Count(&count).Error; err != nil {
		return fmt.Errorf("查询分类数量失败: %w", err)
	}
	if count > 0 {
		loggerMgr.GetLogger().Info("资产分类已存在，跳过填充")
		return nil
	}

	// 三级分类树: 一级 -> 二级 -> 三级
	tree := map[string]map[string][]string{
		"服务器": {
			"机架服务器": {"1U机架服务器", "2U机架服务器", "4U机架服务器"},
			"刀片服务器": {"刀片计算节点"},
		},
		"网络设备": {
			"交换机": {"接入交换机", "核心交换机"},
			"路由器": {"边界路由器"},
		},
		"存储设备": {
			"磁盘阵列": {"SAN存储", "NAS存储"},
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for l1Name, children := range tree {
			l1 := &asset.AssetCategory{Name: l1Name, Level: asset.CategoryLevelOne, Enabled: true}
			if err := tx.Create(l1).Error; err != nil {
				return fmt.Errorf("创建一级分类 %q 失败: %w", l1Name, err)
			}
			for l2Name, leaves := range children {
				l2 := &asset.AssetCategory{Name: l2Name, Level: asset.CategoryLevelTwo, ParentID: l1.ID, Enabled: true}
				if err := tx.Create(l2).Error; err != nil {
					return fmt.Errorf("创建二级分类 %q 失败: %w", l2Name, err)
				}
				for _, l3Name := range leaves {
					l3 := &asset.AssetCategory{Name: l3Name, Level: asset.CategoryLevelThree, ParentID: l2.ID, Enabled: true}
					if err := tx.Create(l3).Error; err != nil {
						return fmt.Errorf("创建三级分类 %q 失败: %w", l3Name, err)
					}
				}
			}
		}
		loggerMgr.GetLogger().Info("资产分类填充完成")
		return nil
	})
}
