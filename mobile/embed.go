//go:build mobile

// 移动端数据嵌入：make prepare-mobile 会把根目录的 data/ 复制到此目录
package mobile

import "embed"

//go:embed data
var dataFS embed.FS
