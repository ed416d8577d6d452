package live

const page = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>grapher</title>
<style>
body { font-family: sans-serif; margin: 16px; }
#plot { border: 1px solid #ccc; cursor: grab; user-select: none; }
#error { color: #c00; min-height: 1.2em; }
#view { color: #666; font-size: 12px; }
</style>
</head>
<body>
<form id="form">y = <input id="expr" size="40"> <button>Plot</button>
<button type="button" data-ev="zoomOut">-</button>
<button type="button" data-ev="zoomIn">+</button>
<button type="button" data-ev="reset">reset</button></form>
<div id="error"></div>
<img id="plot" draggable="false">
<div id="view"></div>
<script>
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.binaryType = "blob";
const img = document.getElementById("plot");
const send = ev => ws.readyState === 1 && ws.send(JSON.stringify(ev));
const pos = e => { const r = img.getBoundingClientRect(); return {x: e.clientX - r.left, y: e.clientY - r.top}; };
ws.onmessage = m => {
  if (m.data instanceof Blob) {
    const old = img.src;
    img.src = URL.createObjectURL(m.data);
    if (old) URL.revokeObjectURL(old);
    document.getElementById("error").textContent = "";
    return;
  }
  const n = JSON.parse(m.data);
  if (n.type === "error") document.getElementById("error").textContent = n.message;
  if (n.type === "view") {
    const w = n.window;
    document.getElementById("view").textContent =
      "x [" + w.xmin.toPrecision(4) + ", " + w.xmax.toPrecision(4) + "]  y [" +
      w.ymin.toPrecision(4) + ", " + w.ymax.toPrecision(4) + "]  " + n.trace;
  }
};
document.getElementById("form").onsubmit = e => {
  e.preventDefault();
  send({type: "expr", expr: document.getElementById("expr").value});
};
document.querySelectorAll("[data-ev]").forEach(b => b.onclick = () => send({type: b.dataset.ev}));
img.addEventListener("wheel", e => { e.preventDefault(); send({type: "wheel", deltaY: e.deltaY, ...pos(e)}); }, {passive: false});
img.onmousedown = e => send({type: "down", ...pos(e)});
img.onmousemove = e => send({type: "move", ...pos(e)});
window.onmouseup = () => send({type: "up"});
img.onmouseleave = () => send({type: "leave"});
</script>
</body>
</html>
`
