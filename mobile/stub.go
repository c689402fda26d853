//go:build !mobile

// Package mobile 的桌面端占位文件，实际入口仅在 -tags mobile 时编译
package mobile

// Dummy 空导出函数，确保包在桌面构建时也能被引用
func Dummy() {}
