//go:build !android

package utils

// EnsureStorageDir 非 Android 平台由 gdata 自行创建存储目录
func EnsureStorageDir(appName string) error {
	return nil
}
