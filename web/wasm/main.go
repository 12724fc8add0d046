//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-pitch/dsp/pitch"
	"github.com/cwbudde/algo-pitch/internal/shim"
)

var (
	handle *shim.Handle
	input  []float32
	funcs  []js.Func
)

func main() {
	api := js.Global().Get("Object").New()
	api.Set("init", export(func(args []js.Value) any {
		opts := []pitch.Option{}
		if len(args) > 0 && args[0].Type() == js.TypeNumber {
			opts = append(opts, pitch.WithSampleRate(args[0].Float()))
		}
		if len(args) > 1 && args[1].Type() == js.TypeObject {
			opts = append(opts, sizeOptions(args[1])...)
		}
		h, err := shim.New(opts...)
		if err != nil {
			return err.Error()
		}
		handle = h
		return js.Null()
	}))

	api.Set("process", export(func(args []js.Value) any {
		if handle == nil || len(args) < 1 {
			return false
		}
		arr := args[0]
		n := arr.Length()
		if cap(input) < n {
			input = make([]float32, n)
		}
		input = input[:n]
		for i := 0; i < n; i++ {
			input[i] = float32(arr.Index(i).Float())
		}
		return handle.Process(input)
	}))

	api.Set("frequency", export(func([]js.Value) any {
		if handle == nil {
			return 0
		}
		return handle.Frequency()
	}))

	api.Set("clarity", export(func([]js.Value) any {
		if handle == nil {
			return 0
		}
		return handle.Clarity()
	}))

	api.Set("midiNoteNumber", export(func([]js.Value) any {
		if handle == nil {
			return 0
		}
		return handle.MIDINoteNumber()
	}))

	api.Set("selectedKeyMaxIndex", export(func([]js.Value) any {
		if handle == nil {
			return -1
		}
		return handle.SelectedKeyMaxIndex()
	}))

	api.Set("isTone", export(func(args []js.Value) any {
		if handle == nil {
			return false
		}
		if len(args) >= 3 {
			return handle.IsToneWithOptions(args[0].Float(), args[1].Float(), args[2].Float())
		}
		return handle.IsTone()
	}))

	api.Set("windowPeak", export(func([]js.Value) any {
		if handle == nil {
			return 0
		}
		return handle.WindowPeak()
	}))

	api.Set("windowRms", export(func([]js.Value) any {
		if handle == nil {
			return 0
		}
		return handle.WindowRMS()
	}))

	api.Set("nsdf", export(func([]js.Value) any {
		if handle == nil {
			return js.Global().Get("Float32Array").New(0)
		}
		buf := make([]float32, handle.LagCount())
		return toFloat32Array(buf[:handle.NSDF(buf)])
	}))

	api.Set("keyMaxima", export(func([]js.Value) any {
		if handle == nil {
			return js.Global().Get("Float32Array").New(0)
		}
		buf := make([]float32, 2*pitch.MaxKeyMaxima)
		return toFloat32Array(buf[:2*handle.KeyMaxima(buf)])
	}))

	api.Set("setDownsampling", export(func(args []js.Value) any {
		if handle == nil || len(args) < 1 {
			return js.Null()
		}
		if err := handle.SetDownsampling(args[0].Int()); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("setSampleRate", export(func(args []js.Value) any {
		if handle == nil || len(args) < 1 {
			return js.Null()
		}
		if err := handle.SetSampleRate(args[0].Float()); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("snapshot", export(func([]js.Value) any {
		if handle == nil {
			return js.Null()
		}
		data, err := handle.SnapshotJSON()
		if err != nil {
			return js.Null()
		}
		return js.Global().Get("JSON").Call("parse", string(data))
	}))

	api.Set("reset", export(func([]js.Value) any {
		if handle != nil {
			handle.Reset()
		}
		return js.Null()
	}))

	js.Global().Set("AlgoPitch", api)
	select {}
}

func sizeOptions(cfg js.Value) []pitch.Option {
	var opts []pitch.Option
	if v := cfg.Get("windowSize"); v.Type() == js.TypeNumber {
		opts = append(opts, pitch.WithWindowSize(v.Int()))
	}
	if v := cfg.Get("hopSize"); v.Type() == js.TypeNumber {
		opts = append(opts, pitch.WithHopSize(v.Int()))
	}
	if v := cfg.Get("lagCount"); v.Type() == js.TypeNumber {
		opts = append(opts, pitch.WithLagCount(v.Int()))
	}
	if v := cfg.Get("downsampling"); v.Type() == js.TypeNumber {
		opts = append(opts, pitch.WithDownsampling(v.Int()))
	}
	return opts
}

func toFloat32Array(data []float32) js.Value {
	arr := js.Global().Get("Float32Array").New(len(data))
	for i, v := range data {
		arr.SetIndex(i, v)
	}
	return arr
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
