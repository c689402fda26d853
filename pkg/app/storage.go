package app

import (
	"log"

	"github.com/decker502/orrery/pkg/utils"
	"github.com/quasilyte/gdata/v2"
)

// StorageAppName gdata 存储使用的应用名
const StorageAppName = "orrery"

// OpenStorage 打开设置和台词记录的持久化存储
// 失败时返回 nil，应用仍可运行，只是数据只保存在内存中
func OpenStorage(appName string) *gdata.Manager {
	if err := utils.EnsureStorageDir(appName); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	storage, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: persistent storage unavailable: %v", err)
		return nil
	}
	return storage
}
