package motion

import "github.com/tanema/gween/ease"

// TweenEasing adapts a gween easing function. gween evaluates in float32, so
// these curves are accurate to about 1e-7; the endpoints are still exact.
func TweenEasing(name string, fn ease.TweenFunc) Easing {
	return Easing{
		name: name,
		fn: func(t float64) float64 {
			return float64(fn(float32(t), 0, 1, 1))
		},
	}
}

// Easing families backed by gween. EaseIn, EaseOut and EaseInOut are the
// quadratic curves.
var (
	EaseIn    = TweenEasing("easeIn", ease.InQuad)
	EaseOut   = TweenEasing("easeOut", ease.OutQuad)
	EaseInOut = TweenEasing("easeInOut", ease.InOutQuad)

	CubicIn    = TweenEasing("cubicIn", ease.InCubic)
	CubicOut   = TweenEasing("cubicOut", ease.OutCubic)
	CubicInOut = TweenEasing("cubicInOut", ease.InOutCubic)

	CircIn    = TweenEasing("circIn", ease.InCirc)
	CircOut   = TweenEasing("circOut", ease.OutCirc)
	CircInOut = TweenEasing("circInOut", ease.InOutCirc)

	BackIn    = TweenEasing("backIn", ease.InBack)
	BackOut   = TweenEasing("backOut", ease.OutBack)
	BackInOut = TweenEasing("backInOut", ease.InOutBack)

	SineIn    = TweenEasing("sineIn", ease.InSine)
	SineOut   = TweenEasing("sineOut", ease.OutSine)
	SineInOut = TweenEasing("sineInOut", ease.InOutSine)

	QuartIn    = TweenEasing("quartIn", ease.InQuart)
	QuartOut   = TweenEasing("quartOut", ease.OutQuart)
	QuartInOut = TweenEasing("quartInOut", ease.InOutQuart)

	QuintIn    = TweenEasing("quintIn", ease.InQuint)
	QuintOut   = TweenEasing("quintOut", ease.OutQuint)
	QuintInOut = TweenEasing("quintInOut", ease.InOutQuint)

	ExpoIn    = TweenEasing("expoIn", ease.InExpo)
	ExpoOut   = TweenEasing("expoOut", ease.OutExpo)
	ExpoInOut = TweenEasing("expoInOut", ease.InOutExpo)

	ElasticIn    = TweenEasing("elasticIn", ease.InElastic)
	ElasticOut   = TweenEasing("elasticOut", ease.OutElastic)
	ElasticInOut = TweenEasing("elasticInOut", ease.InOutElastic)

	BounceIn    = TweenEasing("bounceIn", ease.InBounce)
	BounceOut   = TweenEasing("bounceOut", ease.OutBounce)
	BounceInOut = TweenEasing("bounceInOut", ease.InOutBounce)
)

// tweenEasings indexes the gween families by normalized name.
var tweenEasings = map[string]Easing{
	"sinein":       SineIn,
	"sineout":      SineOut,
	"sineinout":    SineInOut,
	"quartin":      QuartIn,
	"quartout":     QuartOut,
	"quartinout":   QuartInOut,
	"quintin":      QuintIn,
	"quintout":     QuintOut,
	"quintinout":   QuintInOut,
	"expoin":       ExpoIn,
	"expoout":      ExpoOut,
	"expoinout":    ExpoInOut,
	"elasticin":    ElasticIn,
	"elasticout":   ElasticOut,
	"elasticinout": ElasticInOut,
	"bouncein":     BounceIn,
	"bounceout":    BounceOut,
	"bounceinout":  BounceInOut,
}
