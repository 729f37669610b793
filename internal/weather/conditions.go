package weather

// conditionInfo is one row of the weather-code table.
type conditionInfo struct {
	Condition   Condition
	Description string
	Icon        string
	NightIcon   string
}

var conditionTable = map[Condition]conditionInfo{
	ConditionClear:        {ConditionClear, "Clear", "sunny", "clear_night"},
	ConditionMainlyClear:  {ConditionMainlyClear, "Mainly clear", "partly_cloudy_day", "partly_cloudy_night"},
	ConditionPartlyCloudy: {ConditionPartlyCloudy, "Partly cloudy", "partly_cloudy_day", "partly_cloudy_night"},
	ConditionOvercast:     {ConditionOvercast, "Overcast", "cloud", "cloud"},
	ConditionFog:          {ConditionFog, "Fog", "foggy", "foggy"},
	ConditionRain:         {ConditionRain, "Rain", "rainy", "rainy"},
	ConditionSnow:         {ConditionSnow, "Snow", "weather_snowy", "weather_snowy"},
	ConditionStorm:        {ConditionStorm, "Thunderstorm", "thunderstorm", "thunderstorm"},
	ConditionCloudy:       {ConditionCloudy, "Cloudy", "cloud", "cloud"},
}

// codeConditions is the single source of truth for provider weather codes.
// Codes missing here fall back to ConditionCloudy.
var codeConditions = map[int]Condition{
	0:  ConditionClear,
	1:  ConditionMainlyClear,
	2:  ConditionPartlyCloudy,
	3:  ConditionOvercast,
	45: ConditionFog,
	48: ConditionFog,
	51: ConditionRain,
	53: ConditionRain,
	55: ConditionRain,
	56: ConditionRain,
	57: ConditionRain,
	61: ConditionRain,
	63: ConditionRain,
	65: ConditionRain,
	66: ConditionRain,
	67: ConditionRain,
	80: ConditionRain,
	81: ConditionRain,
	82: ConditionRain,
	71: ConditionSnow,
	73: ConditionSnow,
	75: ConditionSnow,
	77: ConditionSnow,
	85: ConditionSnow,
	86: ConditionSnow,
	95: ConditionStorm,
	96: ConditionStorm,
	99: ConditionStorm,
}

// ConditionFor maps a provider weather code to its condition family.
func ConditionFor(code int) Condition {
	if c, ok := codeConditions[code]; ok {
		return c
	}
	return ConditionCloudy
}

// Describe returns the human description for a weather code.
func Describe(code int) string {
	return conditionTable[ConditionFor(code)].Description
}

// IconFor returns the icon class for a weather code, with a night variant
// where one exists.
func IconFor(code int, isDaytime bool) string {
	info := conditionTable[ConditionFor(code)]
	if !isDaytime {
		return info.NightIcon
	}
	return info.Icon
}
