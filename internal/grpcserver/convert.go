package grpcserver

import (
	"github.com/mixaill76/vertex_proxy/internal/chat"
	"github.com/mixaill76/vertex_proxy/internal/vertexpb"
	"google.golang.org/grpc"
)

func fromProtoRequest(req *vertexpb.ChatRequest) *chat.Request {
	out := &chat.Request{Prompt: req.GetPrompt()}
	for _, item := range req.GetHistory() {
		out.History = append(out.History, fromProtoTurn(item))
	}
	return out
}

func fromProtoTurn(item *vertexpb.HistoryItem) chat.Turn {
	turn := chat.Turn{Role: item.GetRole()}
	for _, part := range item.GetParts() {
		turn.Parts = append(turn.Parts, chat.Part{Text: part.GetText()})
	}
	return turn
}

func toProtoTurn(turn chat.Turn) *vertexpb.HistoryItem {
	item := &vertexpb.HistoryItem{Role: turn.Role}
	for _, part := range turn.Parts {
		item.Parts = append(item.Parts, &vertexpb.ContentPart{Text: part.Text})
	}
	return item
}

func toProtoMessage(resp *chat.Response) *vertexpb.ChatMessage {
	msg := &vertexpb.ChatMessage{Error: resp.Error}
	for _, cand := range resp.Candidates {
		msg.Candidates = append(msg.Candidates, &vertexpb.ChatMessage_Candidate{
			Content:      toProtoTurn(cand.Content),
			FinishReason: cand.FinishReason,
		})
	}
	return msg
}

// streamSink adapts a server stream to chat.ChunkSink
type streamSink struct {
	stream grpc.ServerStreamingServer[vertexpb.StreamChatMessage]
}

func (s *streamSink) Send(chunk chat.StreamChunk) error {
	return s.stream.Send(&vertexpb.StreamChatMessage{
		TextChunk:    chunk.TextChunk,
		FinishReason: chunk.FinishReason,
		Error:        chunk.Error,
		IsFinalChunk: chunk.IsFinalChunk,
	})
}
