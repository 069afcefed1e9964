// ABOUTME: Lua bindings for the audio engine
// ABOUTME: Exposes the audio API as a gopher-lua module
package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/noxengine/nox-audio/pkg/audio"
)

// ModuleName is the name the audio module is preloaded under.
const ModuleName = "nox.audio"

const sampleTypeName = "nox.audio.sample"

// Preload registers the audio module with L so that Lua code can
// `require("nox.audio")`. All bound functions run synchronously on the
// caller's goroutine, which must be the control thread.
func Preload(L *lua.LState, engine *audio.Engine) {
	L.PreloadModule(ModuleName, Loader(engine))
}

// Loader returns the module loader. Per-call failures follow the Lua
// convention of returning nil plus a message rather than raising.
func Loader(engine *audio.Engine) lua.LGFunction {
	return func(L *lua.LState) int {
		registerSampleType(L)
		mod := L.SetFuncs(L.NewTable(), exports(engine))
		L.Push(mod)
		return 1
	}
}

func registerSampleType(L *lua.LState) {
	mt := L.NewTypeMetatable(sampleTypeName)
	L.SetField(mt, "__tostring", L.NewFunction(func(L *lua.LState) int {
		s := checkSample(L, 1)
		L.Push(lua.LString("sample: " + s.ID().String()))
		return 1
	}))
}

func exports(e *audio.Engine) map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"get_global_gain": func(L *lua.LState) int {
			L.Push(lua.LNumber(e.Gain()))
			return 1
		},
		"set_global_gain": func(L *lua.LState) int {
			e.SetGain(float64(L.CheckNumber(1)))
			return 0
		},
		"is_voice_playing": func(L *lua.LState) int {
			playing, err := e.VoicePlaying(L.CheckInt(1))
			if err != nil {
				return pushError(L, err)
			}
			L.Push(lua.LBool(playing))
			return 1
		},
		"stop_voice": func(L *lua.LState) int {
			if err := e.StopVoice(L.CheckInt(1)); err != nil {
				return pushError(L, err)
			}
			L.Push(lua.LTrue)
			return 1
		},
		"stop_all_voices": func(L *lua.LState) int {
			e.StopAll()
			return 0
		},
		"load_sample": func(L *lua.LState) int {
			s, err := e.LoadSample([]byte(L.CheckString(1)))
			if err != nil {
				return pushError(L, err)
			}
			ud := L.NewUserData()
			ud.Value = s
			L.SetMetatable(ud, L.GetTypeMetatable(sampleTypeName))
			L.Push(ud)
			return 1
		},
		"destroy_sample": func(L *lua.LState) int {
			checkSample(L, 1).Destroy()
			return 0
		},
		"is_sample_valid": func(L *lua.LState) int {
			L.Push(lua.LBool(checkSample(L, 1).Valid()))
			return 1
		},
		"is_sample_playing": func(L *lua.LState) int {
			L.Push(lua.LBool(e.SamplePlaying(checkSample(L, 1))))
			return 1
		},
		"get_sample_length": func(L *lua.LState) int {
			secs, err := checkSample(L, 1).Length()
			if err != nil {
				return pushError(L, err)
			}
			L.Push(lua.LNumber(secs))
			return 1
		},
		"stop_sample": func(L *lua.LState) int {
			e.StopSample(checkSample(L, 1))
			return 0
		},
		"play_sample": func(L *lua.LState) int {
			s := checkSample(L, 1)
			opts := audio.PlayOptions{
				Gain:  float64(L.OptNumber(2, 1.0)),
				Pitch: float64(L.OptNumber(3, 1.0)),
				Pan:   float64(L.OptNumber(4, 0.0)),
			}
			if L.GetTop() >= 5 {
				opts.Looping = L.ToBool(5)
			}
			index, err := e.Play(s, opts)
			if err != nil {
				return pushError(L, err)
			}
			L.Push(lua.LNumber(index))
			return 1
		},
	}
}

func checkSample(L *lua.LState, n int) *audio.Sample {
	ud := L.CheckUserData(n)
	if s, ok := ud.Value.(*audio.Sample); ok {
		return s
	}
	L.ArgError(n, "sample expected")
	return nil
}

func pushError(L *lua.LState, err error) int {
	L.Push(lua.LNil)
	L.Push(lua.LString(err.Error()))
	return 2
}
