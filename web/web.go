// Package web 内嵌两张静态页面：老人端签到页与家属端监控页。
package web

import _ "embed"

//go:embed senior.html
var SeniorPage []byte

//go:embed guardian.html
var GuardianPage []byte
