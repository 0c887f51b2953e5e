package model

const (
	IconSun           = "sun.max.fill"
	IconMoonStars     = "moon.stars.fill"
	IconCloudSun      = "cloud.sun.fill"
	IconCloudMoon     = "cloud.moon.fill"
	IconCloud         = "cloud.fill"
	IconSmoke         = "smoke.fill"
	IconCloudRain     = "cloud.rain.fill"
	IconCloudSunRain  = "cloud.sun.rain.fill"
	IconCloudMoonRain = "cloud.moon.rain.fill"
	IconCloudBolt     = "cloud.bolt.fill"
	IconSnow          = "snow"
	IconCloudFog      = "cloud.fog.fill"
)

var iconTable = map[string]string{
	"01d": IconSun,
	"01n": IconMoonStars,
	"02d": IconCloudSun,
	"02n": IconCloudMoon,
	"03d": IconCloud,
	"03n": IconCloud,
	"04d": IconSmoke,
	"04n": IconSmoke,
	"09d": IconCloudRain,
	"09n": IconCloudRain,
	"10d": IconCloudSunRain,
	"10n": IconCloudMoonRain,
	"11d": IconCloudBolt,
	"11n": IconCloudBolt,
	"13d": IconSnow,
	"13n": IconSnow,
	"50d": IconCloudFog,
	"50n": IconCloudFog,
}

// IconFor maps a provider icon code to a symbol name. Unknown codes map to IconCloud.
func IconFor(code string) string {
	if icon, ok := iconTable[code]; ok {
		return icon
	}
	return IconCloud
}
