// 资产指纹计算
// 职责: 基于资产编号+名称+序列号生成稳定指纹，批量导入按指纹去重
package importer

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint 计算资产去重指纹
// 三要素去除首尾空白后用 | 拼接，取 SHA-256 的十六进制小写
// 同一台设备无论出现在哪个批次、哪一行，指纹恒定
func Fingerprint(number, name, serialNumber string) string {
	raw := strings.Join([]string{
		strings.TrimSpace(number),
		strings.TrimSpace(name),
		strings.TrimSpace(serialNumber),
	}, "|")

	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
